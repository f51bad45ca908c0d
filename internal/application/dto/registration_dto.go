package dto

import "time"

// CreateRegistrationRequest alta de una solicitud de incorporación (paso contact-details).
type CreateRegistrationRequest struct {
	CompanyName           string `json:"company_name"`
	SelectedPackage       string `json:"selected_package"`
	Province              string `json:"province"`
	District              string `json:"district"`
	DivisionalSecretariat string `json:"divisional_secretariat"`
}

// UpdateDetailsRequest actualización de datos de empresa y ubicación del asistente.
type UpdateDetailsRequest struct {
	CompanyName           string `json:"company_name"`
	SelectedPackage       string `json:"selected_package"`
	Province              string `json:"province"`
	District              string `json:"district"`
	DivisionalSecretariat string `json:"divisional_secretariat"`
}

// AdvanceStepRequest solicitud de avance de paso del asistente.
type AdvanceStepRequest struct {
	Step string `json:"step"` // contact-details, company-details, documentation, incorporate
}

// ApprovalRequest decisión administrativa sobre un pago o documentación.
type ApprovalRequest struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason,omitempty"` // opcional en rechazos
}

// SetExpiryRequest fija o extiende la fecha de vencimiento (renovación de secretaría).
type SetExpiryRequest struct {
	ExpireDate string `json:"expire_date"` // formato 2006-01-02
}

// ReceiptDTO comprobante adjunto en respuestas.
type ReceiptDTO struct {
	FileID     string    `json:"file_id"`
	FileName   string    `json:"file_name"`
	Status     string    `json:"status"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// RegistrationResponse proyección completa de un registro.
type RegistrationResponse struct {
	ID                    string      `json:"id"`
	UserID                string      `json:"user_id"`
	CompanyName           string      `json:"company_name"`
	Status                string      `json:"status"`
	CurrentStep           string      `json:"current_step"`
	DocumentsApproved     bool        `json:"documents_approved"`
	PaymentApproved       bool        `json:"payment_approved"`
	PaymentReceipt        *ReceiptDTO `json:"payment_receipt,omitempty"`
	BalancePaymentReceipt *ReceiptDTO `json:"balance_payment_receipt,omitempty"`
	SelectedPackage       string      `json:"selected_package,omitempty"`
	Province              string      `json:"province,omitempty"`
	District              string      `json:"district,omitempty"`
	DivisionalSecretariat string      `json:"divisional_secretariat,omitempty"`
	ExpireDate            *time.Time  `json:"expire_date,omitempty"`
	IsExpired             bool        `json:"is_expired"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

// RegistrationListResponse listado paginado.
type RegistrationListResponse struct {
	Items []RegistrationResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// SweepReportDTO resultado de una pasada del barrido de vencimientos.
type SweepReportDTO struct {
	Scanned  int `json:"scanned"`
	Notified int `json:"notified"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}
