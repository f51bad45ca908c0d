// Package storage implementa el FileStore sobre el disco local.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/Incorpora-api/internal/application/ports"
	"github.com/jhoicas/Incorpora-api/internal/domain"
)

var _ ports.FileStore = (*LocalStore)(nil)

// LocalStore guarda el contenido de los archivos bajo un directorio raíz.
// Las rutas relativas vienen del caso de uso de uploads (nunca del cliente),
// pero igual se rechaza cualquier ruta que escape de la raíz.
type LocalStore struct {
	basePath string
}

// NewLocalStore construye el almacenamiento y crea el directorio raíz si no existe.
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de almacenamiento: %w", err)
	}
	return &LocalStore{basePath: basePath}, nil
}

// Save escribe el contenido y devuelve los bytes escritos.
func (s *LocalStore) Save(ctx context.Context, relPath string, content io.Reader) (int64, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return 0, fmt.Errorf("crear directorio del archivo: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return 0, fmt.Errorf("crear archivo: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, content)
	if err != nil {
		os.Remove(full)
		return 0, fmt.Errorf("escribir archivo: %w", err)
	}
	return n, nil
}

// Open abre el contenido para lectura. El caller cierra el ReadCloser.
func (s *LocalStore) Open(ctx context.Context, relPath string) (io.ReadCloser, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("abrir archivo: %w", err)
	}
	return f, nil
}

// Delete elimina el contenido. Borrar un archivo inexistente no es error.
func (s *LocalStore) Delete(ctx context.Context, relPath string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar archivo: %w", err)
	}
	return nil
}

// resolve une la ruta relativa a la raíz y verifica que no se escape de ella.
func (s *LocalStore) resolve(relPath string) (string, error) {
	full := filepath.Join(s.basePath, filepath.Clean("/"+relPath))
	if !strings.HasPrefix(full, filepath.Clean(s.basePath)+string(os.PathSeparator)) {
		return "", domain.ErrInvalidInput
	}
	return full, nil
}
