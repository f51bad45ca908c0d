// Package mailer implementa el envío de correos de notificación del flujo de
// trabajo (cambios de estado y avisos de vencimiento) vía SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	gomail "gopkg.in/gomail.v2"

	"github.com/jhoicas/Incorpora-api/internal/application/ports"
	"github.com/jhoicas/Incorpora-api/pkg/config"
)

var _ ports.Mailer = (*SMTPMailer)(nil)

// Plantillas HTML mínimas; el texto visible queda en inglés porque es lo que
// ve el cliente final.
var statusTmpl = template.Must(template.New("status").Parse(`
<p>Hello {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
<p>The status of your incorporation{{if .CompanyName}} for <b>{{.CompanyName}}</b>{{end}} changed to: <b>{{.NewStatus}}</b>.</p>
<p>Sign in to your account to see the details.</p>
`))

var expiryTmpl = template.Must(template.New("expiry").Parse(`
<p>Hello {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
<p>The divisional secretariat registration{{if .CompanyName}} of <b>{{.CompanyName}}</b>{{else}} of your company{{end}} expired on <b>{{.ExpireDate.Format "2006-01-02"}}</b>.</p>
<p>Please renew it to keep your company in good standing.</p>
`))

// SMTPMailer envía correos con gomail. Abre y cierra la conexión por envío:
// el volumen es bajo y evita mantener sesiones SMTP colgadas.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer construye el mailer con la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendStatusUpdate envía el correo de cambio de estado de un registro.
func (m *SMTPMailer) SendStatusUpdate(ctx context.Context, notice ports.StatusNotice) error {
	subject := "Your incorporation status changed"
	if notice.CompanyName != "" {
		subject = fmt.Sprintf("%s: incorporation status changed", notice.CompanyName)
	}
	return m.send(ctx, notice.To, subject, statusTmpl, notice)
}

// SendExpiryNotice envía el aviso de vencimiento de la secretaría.
func (m *SMTPMailer) SendExpiryNotice(ctx context.Context, notice ports.ExpiryNotice) error {
	subject := "Divisional secretariat registration expired"
	if notice.CompanyName != "" {
		subject = fmt.Sprintf("%s: secretariat registration expired", notice.CompanyName)
	}
	return m.send(ctx, notice.To, subject, expiryTmpl, notice)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject string, tmpl *template.Template, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render correo: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar correo a %s: %w", to, err)
	}
	return nil
}
