package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
)

// RegistrationRepository define el puerto de persistencia para Registration (DIP).
// La implementación vive en infrastructure.
//
// ListAll es la fuente del agregador de overview: si la consulta falla por
// conexión devuelve el error tal cual; si falla el escaneo de filas después de
// una consulta exitosa, devuelve las filas legibles envolviendo
// domain.ErrPartialRead para que el caller sustituya placeholders.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *entity.Registration) error
	GetByID(ctx context.Context, id string) (*entity.Registration, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Registration, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Registration, error)
	ListAll(ctx context.Context) ([]*entity.Registration, error)

	// Mutaciones dirigidas del flujo de trabajo (nunca borrado físico).
	UpdateDetails(ctx context.Context, reg *entity.Registration) error
	UpdateStep(ctx context.Context, id, step, status string) error
	SetPaymentApproval(ctx context.Context, id string, approved bool, status string) error
	SetBalanceReceiptStatus(ctx context.Context, id, status string) error
	SetDocumentsApproved(ctx context.Context, id string, approved bool) error
	SetExpiry(ctx context.Context, id string, expireDate time.Time, isExpired bool) error
	AttachReceipt(ctx context.Context, id, kind string, receipt *entity.Receipt) error

	// Barrido de vencimientos.
	ListExpiryCandidates(ctx context.Context, today time.Time) ([]*entity.Registration, error)
	// MarkNotified persiste expiry_notification_sent_at e is_expired en un solo
	// UPDATE, para que reejecutar el barrido inmediatamente no reenvíe.
	MarkNotified(ctx context.Context, id string, sentAt time.Time) error
}
