package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// receiptToJSON serializa un recibo para la columna JSONB. nil -> NULL.
func receiptToJSON(r *entity.Receipt) (any, error) {
	if r == nil {
		return nil, nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal recibo: %w", err)
	}
	return b, nil
}

// receiptFromJSON deserializa la columna JSONB de un recibo. NULL -> nil.
func receiptFromJSON(b []byte) (*entity.Receipt, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var r entity.Receipt
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("unmarshal recibo: %w", err)
	}
	return &r, nil
}
