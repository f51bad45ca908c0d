package mailer

import (
	"context"

	"github.com/jhoicas/Incorpora-api/internal/application/ports"
	"github.com/jhoicas/Incorpora-api/pkg/logger"
)

var _ ports.Mailer = (*DevMailer)(nil)

// DevMailer registra los correos en el log en lugar de enviarlos. Se usa
// cuando SMTP_HOST está vacío (desarrollo local y tests de integración).
type DevMailer struct {
	log *logger.Logger
}

// NewDevMailer construye el mailer de desarrollo.
func NewDevMailer(log *logger.Logger) *DevMailer {
	return &DevMailer{log: log}
}

func (m *DevMailer) SendStatusUpdate(ctx context.Context, notice ports.StatusNotice) error {
	m.log.Info().
		Str("to", notice.To).
		Str("company", notice.CompanyName).
		Str("new_status", notice.NewStatus).
		Msg("mailer dev: correo de cambio de estado (no enviado)")
	return nil
}

func (m *DevMailer) SendExpiryNotice(ctx context.Context, notice ports.ExpiryNotice) error {
	m.log.Info().
		Str("to", notice.To).
		Str("company", notice.CompanyName).
		Time("expire_date", notice.ExpireDate).
		Msg("mailer dev: aviso de vencimiento (no enviado)")
	return nil
}
