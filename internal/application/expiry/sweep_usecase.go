// Package expiry implementa la pasada diaria de vencimientos: detecta
// secretarías vencidas y notifica a lo sumo una vez por día calendario.
package expiry

import (
	"context"
	"time"

	"github.com/jhoicas/Incorpora-api/internal/application/dto"
	"github.com/jhoicas/Incorpora-api/internal/application/ports"
	"github.com/jhoicas/Incorpora-api/internal/domain/lifecycle"
	"github.com/jhoicas/Incorpora-api/internal/domain/repository"
	"github.com/jhoicas/Incorpora-api/pkg/logger"
)

// SweepUseCase recorre los candidatos a vencimiento y envía recordatorios.
// El fallo de un registro no detiene el lote: se cuenta y se sigue.
type SweepUseCase struct {
	regRepo  repository.RegistrationRepository
	userRepo repository.UserRepository
	mailer   ports.Mailer
	log      *logger.Logger
	now      func() time.Time
}

func NewSweepUseCase(regRepo repository.RegistrationRepository, userRepo repository.UserRepository, mailer ports.Mailer, log *logger.Logger) *SweepUseCase {
	return &SweepUseCase{
		regRepo:  regRepo,
		userRepo: userRepo,
		mailer:   mailer,
		log:      log,
		now:      time.Now,
	}
}

// WithClock fija el reloj de la pasada (para tests deterministas).
func (uc *SweepUseCase) WithClock(now func() time.Time) *SweepUseCase {
	uc.now = now
	return uc
}

// Run ejecuta una pasada completa. Idempotente a granularidad de día:
// una segunda ejecución el mismo día no vuelve a notificar, porque el
// marcado persiste la fecha de envío y NotificationOwed la compara contra hoy.
func (uc *SweepUseCase) Run(ctx context.Context) (*dto.SweepReportDTO, error) {
	today := uc.now()
	report := &dto.SweepReportDTO{}

	candidates, err := uc.regRepo.ListExpiryCandidates(ctx, today)
	if err != nil {
		uc.log.Error().Err(err).Msg("sweep: no se pudieron listar candidatos a vencimiento")
		return nil, err
	}
	report.Scanned = len(candidates)

	for _, r := range candidates {
		if !lifecycle.NotificationOwed(r, today) {
			report.Skipped++
			continue
		}

		notice := ports.ExpiryNotice{
			To:          r.UserEmail,
			Name:        uc.customerName(ctx, r.UserEmail),
			CompanyName: r.CompanyName,
		}
		if r.ExpireDate != nil {
			notice.ExpireDate = *r.ExpireDate
		}
		if err := uc.mailer.SendExpiryNotice(ctx, notice); err != nil {
			report.Failed++
			uc.log.Warn().Err(err).Str("registration_id", r.ID).Msg("sweep: fallo al enviar recordatorio de vencimiento")
			continue
		}
		// Solo tras el envío exitoso: si el marcado fallara, el próximo día
		// el registro vuelve a ser candidato, nunca se pierde un recordatorio.
		if err := uc.regRepo.MarkNotified(ctx, r.ID, today); err != nil {
			report.Failed++
			uc.log.Warn().Err(err).Str("registration_id", r.ID).Msg("sweep: fallo al marcar registro como notificado")
			continue
		}
		report.Notified++
	}

	uc.log.Info().
		Int("scanned", report.Scanned).
		Int("notified", report.Notified).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("sweep: pasada de vencimientos completada")

	return report, nil
}

// customerName resuelve el nombre del titular para el saludo del correo.
// Es un dato cosmético: si la búsqueda falla, el recordatorio sale igual
// y la plantilla usa su saludo genérico.
func (uc *SweepUseCase) customerName(ctx context.Context, email string) string {
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		uc.log.Warn().Err(err).Str("email", email).Msg("sweep: no se pudo resolver el nombre del titular")
		return ""
	}
	if user == nil {
		return ""
	}
	return user.Name
}
