package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Incorpora-api/internal/application/analytics"
	"github.com/jhoicas/Incorpora-api/internal/application/auth"
	"github.com/jhoicas/Incorpora-api/internal/application/expiry"
	"github.com/jhoicas/Incorpora-api/internal/application/usecase"
	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	RegistrationUC *usecase.RegistrationUseCase
	PackageUC      *usecase.PackageUseCase
	UploadUC       *usecase.UploadUseCase
	SummaryUC      *usecase.SummaryPDFUseCase
	OverviewUC     *analytics.OverviewUseCase
	SweepUC        *expiry.SweepUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo de planes (público: el frontend lo muestra antes del login)
	packages := api.Group("/packages")
	packageHandler := NewPackageHandler(deps.PackageUC)
	packages.Get("/", packageHandler.List)
	packages.Get("/:id", packageHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Registros (protegido)
	registrations := protected.Group("/registrations")
	registrationHandler := NewRegistrationHandler(deps.RegistrationUC)
	registrations.Post("/", registrationHandler.Create)
	registrations.Get("/", registrationHandler.List)
	registrations.Get("/:id", registrationHandler.GetByID)
	registrations.Put("/:id/details", registrationHandler.UpdateDetails)
	registrations.Post("/:id/step", registrationHandler.AdvanceStep)

	// Resumen PDF (protegido; solo registros completados)
	summaryHandler := NewSummaryHandler(deps.SummaryUC)
	registrations.Get("/:id/summary.pdf", summaryHandler.Download)

	// Archivos subidos (protegido)
	uploads := protected.Group("/uploads")
	uploadHandler := NewUploadHandler(deps.UploadUC)
	uploads.Post("/", uploadHandler.Upload)
	uploads.Get("/:id", uploadHandler.Download)
	uploads.Delete("/:id", uploadHandler.Delete)

	// Rutas administrativas (Bearer Token + rol admin)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Get("/registrations", registrationHandler.ListAdmin)
	admin.Post("/registrations/:id/payment-decision", registrationHandler.DecidePayment)
	admin.Post("/registrations/:id/balance-decision", registrationHandler.DecideBalancePayment)
	admin.Post("/registrations/:id/documents-decision", registrationHandler.DecideDocuments)
	admin.Post("/registrations/:id/expiry", registrationHandler.SetExpiry)

	admin.Post("/packages", packageHandler.Create)
	admin.Put("/packages/:id", packageHandler.Update)

	overviewHandler := NewOverviewHandler(deps.OverviewUC)
	admin.Get("/overview", overviewHandler.Get)

	sweepHandler := NewSweepHandler(deps.SweepUC)
	admin.Post("/expiry-sweep", sweepHandler.Run)
}
