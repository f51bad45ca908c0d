package ports

import (
	"context"
	"io"
)

// FileStore capacidad de almacenamiento del contenido de archivos subidos.
// Las rutas son relativas a la raíz del almacenamiento configurado.
type FileStore interface {
	Save(ctx context.Context, relPath string, content io.Reader) (int64, error)
	Open(ctx context.Context, relPath string) (io.ReadCloser, error)
	Delete(ctx context.Context, relPath string) error
}
