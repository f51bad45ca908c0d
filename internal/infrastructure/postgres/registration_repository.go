package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Incorpora-api/internal/domain"
	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
	"github.com/jhoicas/Incorpora-api/internal/domain/repository"
)

var _ repository.RegistrationRepository = (*RegistrationRepo)(nil)

// Columnas en orden de scan; los recibos viajan como JSONB.
const registrationColumns = `id, user_id, user_email, company_name, status, current_step,
	documents_approved, payment_approved, payment_receipt, balance_payment_receipt,
	selected_package, province, district, divisional_secretariat,
	expire_date, is_expired, expiry_notification_sent_at, created_at, updated_at`

// RegistrationRepo implementación del puerto RegistrationRepository sobre PostgreSQL (usable con pool o tx).
type RegistrationRepo struct {
	q Querier
}

// NewRegistrationRepository construye el adaptador de persistencia para registros. Pasar pool o tx (Querier).
func NewRegistrationRepository(q Querier) *RegistrationRepo {
	return &RegistrationRepo{q: q}
}

// Create persiste un nuevo registro.
func (r *RegistrationRepo) Create(ctx context.Context, reg *entity.Registration) error {
	payment, err := receiptToJSON(reg.PaymentReceipt)
	if err != nil {
		return err
	}
	balance, err := receiptToJSON(reg.BalancePaymentReceipt)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO registrations (` + registrationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err = r.q.Exec(ctx, query,
		reg.ID, reg.UserID, reg.UserEmail, reg.CompanyName, reg.Status, reg.CurrentStep,
		reg.DocumentsApproved, reg.PaymentApproved, payment, balance,
		reg.SelectedPackage, reg.Province, reg.District, reg.DivisionalSecretariat,
		reg.ExpireDate, reg.IsExpired, reg.ExpiryNotificationSentAt, reg.CreatedAt, reg.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID. Devuelve (nil, nil) si no existe.
func (r *RegistrationRepo) GetByID(ctx context.Context, id string) (*entity.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	reg, err := scanRegistration(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

// List lista registros con paginación, los más recientes primero.
func (r *RegistrationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return collectRegistrations(rows)
}

// ListByUser lista los registros de un usuario, los más recientes primero.
func (r *RegistrationRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations by user: %w", err)
	}
	return collectRegistrations(rows)
}

// ListAll materializa todos los registros para el agregador del overview.
//
// Escaneo leniente: si una fila no se puede escanear después de una consulta
// exitosa, se devuelven las filas legibles junto con un error que envuelve
// domain.ErrPartialRead, para que el caller decida sustituir placeholders.
// Un fallo de la consulta misma se devuelve tal cual (almacén inaccesible).
func (r *RegistrationRepo) ListAll(ctx context.Context) ([]*entity.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all registrations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Registration
	var scanErr error
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			scanErr = err
			continue
		}
		list = append(list, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	if scanErr != nil {
		return list, fmt.Errorf("scan registration: %v: %w", scanErr, domain.ErrPartialRead)
	}
	return list, nil
}

// UpdateDetails actualiza los campos editables por el cliente en el paso de datos de empresa.
func (r *RegistrationRepo) UpdateDetails(ctx context.Context, reg *entity.Registration) error {
	query := `
		UPDATE registrations
		SET company_name = $2, selected_package = $3, province = $4, district = $5,
		    divisional_secretariat = $6, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		reg.ID, reg.CompanyName, reg.SelectedPackage, reg.Province, reg.District, reg.DivisionalSecretariat,
	)
	if err != nil {
		return fmt.Errorf("update registration details: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStep mueve el registro a otro paso del asistente y fija su estado.
func (r *RegistrationRepo) UpdateStep(ctx context.Context, id, step, status string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE registrations SET current_step = $2, status = $3, updated_at = now() WHERE id = $1`,
		id, step, status,
	)
	if err != nil {
		return fmt.Errorf("update registration step: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetPaymentApproval fija la aprobación del pago inicial y el estado resultante.
func (r *RegistrationRepo) SetPaymentApproval(ctx context.Context, id string, approved bool, status string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE registrations SET payment_approved = $2, status = $3, updated_at = now() WHERE id = $1`,
		id, approved, status,
	)
	if err != nil {
		return fmt.Errorf("set payment approval: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetBalanceReceiptStatus actualiza solo el campo status dentro del JSONB del recibo de saldo.
func (r *RegistrationRepo) SetBalanceReceiptStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE registrations
		SET balance_payment_receipt = jsonb_set(balance_payment_receipt, '{status}', to_jsonb($2::text)),
		    updated_at = now()
		WHERE id = $1 AND balance_payment_receipt IS NOT NULL`
	cmd, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("set balance receipt status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDocumentsApproved fija la aprobación de la documentación legal.
func (r *RegistrationRepo) SetDocumentsApproved(ctx context.Context, id string, approved bool) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE registrations SET documents_approved = $2, updated_at = now() WHERE id = $1`,
		id, approved,
	)
	if err != nil {
		return fmt.Errorf("set documents approved: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetExpiry fija la fecha de vencimiento de la secretaría y el flag cacheado.
func (r *RegistrationRepo) SetExpiry(ctx context.Context, id string, expireDate time.Time, isExpired bool) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE registrations SET expire_date = $2, is_expired = $3, updated_at = now() WHERE id = $1`,
		id, expireDate, isExpired,
	)
	if err != nil {
		return fmt.Errorf("set expiry: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AttachReceipt adjunta (o con nil, desadjunta) el recibo del tipo dado.
func (r *RegistrationRepo) AttachReceipt(ctx context.Context, id, kind string, receipt *entity.Receipt) error {
	var column string
	switch kind {
	case entity.FileKindPaymentReceipt:
		column = "payment_receipt"
	case entity.FileKindBalanceReceipt:
		column = "balance_payment_receipt"
	default:
		return domain.ErrInvalidInput
	}
	payload, err := receiptToJSON(receipt)
	if err != nil {
		return err
	}
	// column viene de un switch cerrado, nunca de entrada del cliente.
	query := fmt.Sprintf(`UPDATE registrations SET %s = $2, updated_at = now() WHERE id = $1`, column)
	cmd, err := r.q.Exec(ctx, query, id, payload)
	if err != nil {
		return fmt.Errorf("attach receipt: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListExpiryCandidates lista los registros vencidos a la fecha dada: flag
// cacheado o fecha de vencimiento anterior al día de hoy.
func (r *RegistrationRepo) ListExpiryCandidates(ctx context.Context, today time.Time) ([]*entity.Registration, error) {
	query := `SELECT ` + registrationColumns + `
		FROM registrations
		WHERE is_expired = true OR (expire_date IS NOT NULL AND expire_date::date < $1::date)
		ORDER BY expire_date ASC NULLS LAST`
	rows, err := r.q.Query(ctx, query, today)
	if err != nil {
		return nil, fmt.Errorf("list expiry candidates: %w", err)
	}
	return collectRegistrations(rows)
}

// MarkNotified persiste la fecha del último aviso y el flag de vencido en un
// solo UPDATE: reejecutar el barrido el mismo día no reenvía.
func (r *RegistrationRepo) MarkNotified(ctx context.Context, id string, sentAt time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE registrations SET expiry_notification_sent_at = $2, is_expired = true, updated_at = now() WHERE id = $1`,
		id, sentAt,
	)
	if err != nil {
		return fmt.Errorf("mark notified: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanRegistration escanea una fila completa, deserializando los recibos JSONB.
func scanRegistration(row pgx.Row) (*entity.Registration, error) {
	var reg entity.Registration
	var payment, balance []byte
	err := row.Scan(
		&reg.ID, &reg.UserID, &reg.UserEmail, &reg.CompanyName, &reg.Status, &reg.CurrentStep,
		&reg.DocumentsApproved, &reg.PaymentApproved, &payment, &balance,
		&reg.SelectedPackage, &reg.Province, &reg.District, &reg.DivisionalSecretariat,
		&reg.ExpireDate, &reg.IsExpired, &reg.ExpiryNotificationSentAt, &reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if reg.PaymentReceipt, err = receiptFromJSON(payment); err != nil {
		return nil, err
	}
	if reg.BalancePaymentReceipt, err = receiptFromJSON(balance); err != nil {
		return nil, err
	}
	return &reg, nil
}

// collectRegistrations escanea todas las filas con fallo duro al primer error.
func collectRegistrations(rows pgx.Rows) ([]*entity.Registration, error) {
	defer rows.Close()
	var list []*entity.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		list = append(list, reg)
	}
	return list, rows.Err()
}
