package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Incorpora-api/internal/application/analytics"
	"github.com/jhoicas/Incorpora-api/internal/application/auth"
	"github.com/jhoicas/Incorpora-api/internal/application/expiry"
	"github.com/jhoicas/Incorpora-api/internal/application/ports"
	"github.com/jhoicas/Incorpora-api/internal/application/usecase"
	inframailer "github.com/jhoicas/Incorpora-api/internal/infrastructure/mailer"
	infrapdf "github.com/jhoicas/Incorpora-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Incorpora-api/internal/infrastructure/postgres"
	infrastorage "github.com/jhoicas/Incorpora-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Incorpora-api/internal/interfaces/http"
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
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	regRepo := postgres.NewRegistrationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	pkgRepo := postgres.NewPackageRepository(pool)
	fileRepo := postgres.NewFileRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	store, err := infrastorage.NewLocalStore(cfg.Storage.BasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de archivos")
	}

	// Sin SMTP_HOST los correos solo se registran en el log.
	var mail ports.Mailer
	if cfg.SMTP.Host != "" {
		mail = inframailer.NewSMTPMailer(cfg.SMTP)
	} else {
		log.Warn().Msg("SMTP_HOST vacío: usando mailer de desarrollo")
		mail = inframailer.NewDevMailer(log)
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	registrationUC := usecase.NewRegistrationUseCase(regRepo, mail, log)
	packageUC := usecase.NewPackageUseCase(pkgRepo)
	uploadUC := usecase.NewUploadUseCase(regRepo, fileRepo, txRunner, store, cfg.Storage.MaxSizeMB, log)
	summaryUC := usecase.NewSummaryPDFUseCase(regRepo, pkgRepo, fileRepo, infrapdf.NewMarotoSummaryGenerator())
	overviewUC := analytics.NewOverviewUseCase(regRepo, userRepo, pkgRepo, log)
	sweepUC := expiry.NewSweepUseCase(regRepo, userRepo, mail, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Incorpora API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		RegistrationUC: registrationUC,
		PackageUC:      packageUC,
		UploadUC:       uploadUC,
		SummaryUC:      summaryUC,
		OverviewUC:     overviewUC,
		SweepUC:        sweepUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
