package repository

import (
	"context"

	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
)

// FileRepository define el puerto de persistencia para metadatos de archivos subidos.
// El contenido binario vive en el FileStore de infraestructura, no aquí.
type FileRepository interface {
	Create(ctx context.Context, file *entity.StoredFile) error
	GetByID(ctx context.Context, id string) (*entity.StoredFile, error)
	ListByRegistration(ctx context.Context, registrationID string) ([]*entity.StoredFile, error)
	Delete(ctx context.Context, id string) error
}
