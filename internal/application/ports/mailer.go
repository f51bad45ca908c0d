package ports

import (
	"context"
	"time"
)

// StatusNotice datos para el correo de cambio de estado de un registro.
type StatusNotice struct {
	To          string
	Name        string
	CompanyName string
	NewStatus   string // etiqueta legible: "Payment approved", "Incorporation completed", ...
}

// ExpiryNotice datos para el correo de aviso de vencimiento (renovación de secretaría).
type ExpiryNotice struct {
	To          string
	Name        string
	CompanyName string
	ExpireDate  time.Time
}

// Mailer capacidad de envío de correos de notificación del flujo de trabajo.
// Las implementaciones no deben retener la conexión SMTP entre llamadas.
type Mailer interface {
	SendStatusUpdate(ctx context.Context, notice StatusNotice) error
	SendExpiryNotice(ctx context.Context, notice ExpiryNotice) error
}
