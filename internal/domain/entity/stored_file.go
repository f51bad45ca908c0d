package entity

import "time"

// Tipos de archivo subido, según el paso del asistente que los produce.
const (
	FileKindPaymentReceipt = "payment-receipt"
	FileKindBalanceReceipt = "balance-receipt"
	FileKindDocument       = "document"
)

// StoredFile representa los metadatos de un archivo subido (recibo o documento legal).
// El contenido vive en disco bajo Storage.BasePath; aquí solo la referencia.
type StoredFile struct {
	ID             string
	RegistrationID string
	Kind           string // ver constantes FileKind*
	FileName       string // nombre original del cliente
	ContentType    string
	SizeBytes      int64
	Path           string // ruta relativa dentro del almacenamiento
	UploadedBy     string // UserID
	CreatedAt      time.Time
}
