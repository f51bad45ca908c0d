// Comando expirysweep ejecuta una pasada del barrido de vencimientos y termina.
// Pensado para correr desde cron una vez al día; la idempotencia a granularidad
// de día hace inofensivo ejecutarlo más seguido.
package main

import (
	"context"
	"time"

	"github.com/jhoicas/Incorpora-api/internal/application/expiry"
	"github.com/jhoicas/Incorpora-api/internal/application/ports"
	inframailer "github.com/jhoicas/Incorpora-api/internal/infrastructure/mailer"
	"github.com/jhoicas/Incorpora-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Incorpora-api/pkg/config"
	"github.com/jhoicas/Incorpora-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	var mail ports.Mailer
	if cfg.SMTP.Host != "" {
		mail = inframailer.NewSMTPMailer(cfg.SMTP)
	} else {
		log.Warn().Msg("SMTP_HOST vacío: usando mailer de desarrollo")
		mail = inframailer.NewDevMailer(log)
	}

	regRepo := postgres.NewRegistrationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	sweep := expiry.NewSweepUseCase(regRepo, userRepo, mail, log)

	report, err := sweep.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("barrido de vencimientos fallido")
	}
	log.Info().
		Int("scanned", report.Scanned).
		Int("notified", report.Notified).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("barrido de vencimientos terminado")
}
