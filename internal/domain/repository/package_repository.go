package repository

import (
	"context"

	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
)

// PackageRepository define el puerto de persistencia para Package (DIP).
type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.Package) error
	GetByID(ctx context.Context, id string) (*entity.Package, error)
	Update(ctx context.Context, pkg *entity.Package) error
	ListActive(ctx context.Context) ([]*entity.Package, error)
	ListAll(ctx context.Context) ([]*entity.Package, error)
}
