package entity

import "time"

// Pasos del asistente de registro (pipeline fijo de cuatro etapas).
const (
	StepContactDetails = "contact-details"
	StepCompanyDetails = "company-details"
	StepDocumentation  = "documentation"
	StepIncorporate    = "incorporate"
)

// Estados secundarios del registro. Status es una etiqueta libre que puede
// retrasarse respecto a CurrentStep; la clasificación tolera la inconsistencia.
const (
	StatusPaymentProcessing = "payment-processing"
	StatusPaymentRejected   = "payment-rejected"
	StatusDocumentsPending  = "documents-pending"
	StatusCompleted         = "completed"
)

// Estados de un recibo de pago.
const (
	ReceiptStatusPending  = "pending"
	ReceiptStatusApproved = "approved"
	ReceiptStatusRejected = "rejected"
)

// Receipt representa un comprobante de pago adjunto a un registro.
// La ausencia se modela con puntero nil; el estado con el campo Status.
// Se persiste como JSONB en la fila del registro.
type Receipt struct {
	FileID     string    `json:"file_id"`
	FileName   string    `json:"file_name"`
	Status     string    `json:"status"` // pending, approved, rejected
	UploadedAt time.Time `json:"uploaded_at"`
}

// Approved informa si el recibo existe y está aprobado.
func (r *Receipt) Approved() bool {
	return r != nil && r.Status == ReceiptStatusApproved
}

// Registration representa una solicitud de incorporación de empresa.
// Nunca se elimina físicamente: el estado vive en flags y pasos.
type Registration struct {
	ID        string
	UserID    string
	UserEmail string

	CompanyName string

	// Flujo de trabajo
	Status                string // ver constantes Status*
	CurrentStep           string // ver constantes Step*
	DocumentsApproved     bool
	PaymentApproved       bool
	PaymentReceipt        *Receipt
	BalancePaymentReceipt *Receipt

	// Comercial
	SelectedPackage string // FK a Package.ID; puede ser vacío u obsoleto

	// Ubicación (texto libre, puede venir vacío)
	Province              string
	District              string
	DivisionalSecretariat string

	// Vencimiento (renovación de secretaría)
	ExpireDate               *time.Time
	IsExpired                bool // cache desnormalizado del chequeo de vencimiento
	ExpiryNotificationSentAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LastTouched devuelve UpdatedAt con fallback a CreatedAt, para ordenar actividad reciente.
func (r *Registration) LastTouched() time.Time {
	if !r.UpdatedAt.IsZero() {
		return r.UpdatedAt
	}
	return r.CreatedAt
}
