package repository

import (
	"context"

	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los conteos por rol/verificación del overview se calculan en memoria sobre
// ListAll; no hay queries de agregación dedicadas.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ListAll(ctx context.Context) ([]*entity.User, error)
}
