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

var _ repository.PackageRepository = (*PackageRepo)(nil)

const packageColumns = `id, name, price, advance_amount, balance_amount, is_active, created_at, updated_at`

// PackageRepo implementación del puerto PackageRepository sobre PostgreSQL.
type PackageRepo struct {
	q Querier
}

// NewPackageRepository construye el adaptador de persistencia para planes de incorporación.
func NewPackageRepository(q Querier) *PackageRepo {
	return &PackageRepo{q: q}
}

// Create persiste un nuevo plan.
func (r *PackageRepo) Create(ctx context.Context, pkg *entity.Package) error {
	query := `INSERT INTO packages (` + packageColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		pkg.ID, pkg.Name, pkg.Price, pkg.AdvanceAmount, pkg.BalanceAmount,
		pkg.IsActive, pkg.CreatedAt, pkg.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert package: %w", err)
	}
	return nil
}

// GetByID obtiene un plan por ID. Devuelve (nil, nil) si no existe.
func (r *PackageRepo) GetByID(ctx context.Context, id string) (*entity.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`
	var p entity.Package
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.AdvanceAmount, &p.BalanceAmount,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package: %w", err)
	}
	return &p, nil
}

// Update actualiza nombre, montos y activación de un plan.
func (r *PackageRepo) Update(ctx context.Context, pkg *entity.Package) error {
	query := `
		UPDATE packages
		SET name = $2, price = $3, advance_amount = $4, balance_amount = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		pkg.ID, pkg.Name, pkg.Price, pkg.AdvanceAmount, pkg.BalanceAmount, pkg.IsActive, pkg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update package: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActive lista los planes visibles para clientes.
func (r *PackageRepo) ListActive(ctx context.Context) ([]*entity.Package, error) {
	return r.list(ctx, `SELECT `+packageColumns+` FROM packages WHERE is_active = true ORDER BY price ASC`)
}

// ListAll lista todos los planes, incluidos los retirados (para el catálogo de precios del overview).
func (r *PackageRepo) ListAll(ctx context.Context) ([]*entity.Package, error) {
	return r.list(ctx, `SELECT `+packageColumns+` FROM packages ORDER BY price ASC`)
}

func (r *PackageRepo) list(ctx context.Context, query string) ([]*entity.Package, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Package
	for rows.Next() {
		var p entity.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.AdvanceAmount, &p.BalanceAmount,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
