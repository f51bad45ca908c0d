package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Incorpora-api/internal/application/usecase"
	"github.com/jhoicas/Incorpora-api/internal/domain/repository"
)

var _ usecase.UploadTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunUpload inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Los metadatos del archivo y el recibo en la fila del
// registro se escriben atómicamente.
func (r *TxRunner) RunUpload(ctx context.Context, fn func(
	regRepo repository.RegistrationRepository,
	fileRepo repository.FileRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	regRepo := NewRegistrationRepository(tx)
	fileRepo := NewFileRepository(tx)

	if err := fn(regRepo, fileRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
