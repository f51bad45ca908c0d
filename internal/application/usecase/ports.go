package usecase

import (
	"context"

	"github.com/jhoicas/Incorpora-api/internal/domain/repository"
)

// UploadTxRunner ejecuta un callback con repos atados a una misma transacción:
// la fila de metadatos del archivo y el recibo en la fila del registro se
// escriben atómicamente o no se escriben.
type UploadTxRunner interface {
	RunUpload(ctx context.Context, fn func(
		regRepo repository.RegistrationRepository,
		fileRepo repository.FileRepository,
	) error) error
}
