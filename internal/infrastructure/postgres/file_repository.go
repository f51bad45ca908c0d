package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Incorpora-api/internal/domain"
	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
	"github.com/jhoicas/Incorpora-api/internal/domain/repository"
)

var _ repository.FileRepository = (*FileRepo)(nil)

const fileColumns = `id, registration_id, kind, file_name, content_type, size_bytes, path, uploaded_by, created_at`

// FileRepo implementación del puerto FileRepository sobre PostgreSQL (usable con pool o tx).
type FileRepo struct {
	q Querier
}

// NewFileRepository construye el adaptador de persistencia para metadatos de archivos.
func NewFileRepository(q Querier) *FileRepo {
	return &FileRepo{q: q}
}

// Create persiste los metadatos de un archivo subido.
func (r *FileRepo) Create(ctx context.Context, file *entity.StoredFile) error {
	query := `INSERT INTO uploaded_files (` + fileColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		file.ID, file.RegistrationID, file.Kind, file.FileName, file.ContentType,
		file.SizeBytes, file.Path, file.UploadedBy, file.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert uploaded file: %w", err)
	}
	return nil
}

// GetByID obtiene los metadatos de un archivo. Devuelve (nil, nil) si no existe.
func (r *FileRepo) GetByID(ctx context.Context, id string) (*entity.StoredFile, error) {
	query := `SELECT ` + fileColumns + ` FROM uploaded_files WHERE id = $1`
	var f entity.StoredFile
	err := r.q.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.RegistrationID, &f.Kind, &f.FileName, &f.ContentType,
		&f.SizeBytes, &f.Path, &f.UploadedBy, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get uploaded file: %w", err)
	}
	return &f, nil
}

// ListByRegistration lista los archivos de un registro, en orden de subida.
func (r *FileRepo) ListByRegistration(ctx context.Context, registrationID string) ([]*entity.StoredFile, error) {
	query := `SELECT ` + fileColumns + ` FROM uploaded_files WHERE registration_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, registrationID)
	if err != nil {
		return nil, fmt.Errorf("list uploaded files: %w", err)
	}
	defer rows.Close()
	var list []*entity.StoredFile
	for rows.Next() {
		var f entity.StoredFile
		if err := rows.Scan(&f.ID, &f.RegistrationID, &f.Kind, &f.FileName, &f.ContentType,
			&f.SizeBytes, &f.Path, &f.UploadedBy, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan uploaded file: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Delete elimina los metadatos de un archivo por ID.
func (r *FileRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM uploaded_files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete uploaded file: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
