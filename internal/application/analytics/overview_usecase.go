// Package analytics contiene el agregador del overview: el payload completo
// del dashboard administrativo derivado del ciclo de vida de los registros.
package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Incorpora-api/internal/application/dto"
	"github.com/jhoicas/Incorpora-api/internal/domain"
	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
	"github.com/jhoicas/Incorpora-api/internal/domain/lifecycle"
	"github.com/jhoicas/Incorpora-api/internal/domain/repository"
	"github.com/jhoicas/Incorpora-api/pkg/logger"
)

const recentActivityLimit = 10

// OverviewUseCase construye el payload del dashboard desde las tres
// colecciones crudas (registros, usuarios, planes).
//
// Política de errores: el dashboard prefiere datos parciales a fallar.
//   - Almacén inaccesible → payload bien formado en ceros + ErrStoreUnavailable
//     (el handler responde 503 con ese cuerpo).
//   - Lectura parcial de filas de registros → se sustituyen placeholders de
//     ids conocidos y se marca Fallback, sin propagar el error.
type OverviewUseCase struct {
	regRepo  repository.RegistrationRepository
	userRepo repository.UserRepository
	pkgRepo  repository.PackageRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewOverviewUseCase construye el caso de uso.
func NewOverviewUseCase(
	regRepo repository.RegistrationRepository,
	userRepo repository.UserRepository,
	pkgRepo repository.PackageRepository,
	log *logger.Logger,
) *OverviewUseCase {
	return &OverviewUseCase{
		regRepo:  regRepo,
		userRepo: userRepo,
		pkgRepo:  pkgRepo,
		log:      log,
		now:      time.Now,
	}
}

// WithClock fija el reloj del agregador (para tests deterministas).
func (uc *OverviewUseCase) WithClock(now func() time.Time) *OverviewUseCase {
	uc.now = now
	return uc
}

// GetOverview materializa las tres colecciones y agrega todo en memoria.
//
// Tres llamadas en paralelo:
//  1. ListAll registros  (escaneo leniente: tolera filas ilegibles)
//  2. ListAll usuarios
//  3. ListAll planes
func (uc *OverviewUseCase) GetOverview(ctx context.Context) (*dto.OverviewDTO, error) {
	type regsResult struct {
		regs []*entity.Registration
		err  error
	}
	type usersResult struct {
		users []*entity.User
		err   error
	}
	type pkgsResult struct {
		pkgs []*entity.Package
		err  error
	}

	regsCh := make(chan regsResult, 1)
	usersCh := make(chan usersResult, 1)
	pkgsCh := make(chan pkgsResult, 1)

	go func() {
		regs, err := uc.regRepo.ListAll(ctx)
		regsCh <- regsResult{regs, err}
	}()
	go func() {
		users, err := uc.userRepo.ListAll(ctx)
		usersCh <- usersResult{users, err}
	}()
	go func() {
		pkgs, err := uc.pkgRepo.ListAll(ctx)
		pkgsCh <- pkgsResult{pkgs, err}
	}()

	regsRes := <-regsCh
	usersRes := <-usersCh
	pkgsRes := <-pkgsCh

	fallback := false
	regs := regsRes.regs
	if regsRes.err != nil {
		if !errors.Is(regsRes.err, domain.ErrPartialRead) {
			uc.log.Error().Err(regsRes.err).Msg("overview: almacén inaccesible al listar registros")
			return uc.zeroPayload(regsRes.err), domain.ErrStoreUnavailable
		}
		// Filas ilegibles tras una consulta exitosa: placeholders reconocibles
		// por sus ids, para que el dashboard siga ejercitando su shape completo.
		uc.log.Warn().Err(regsRes.err).Msg("overview: lectura parcial de registros, usando placeholders")
		regs = placeholderRegistrations(uc.now())
		fallback = true
	}
	if usersRes.err != nil {
		uc.log.Error().Err(usersRes.err).Msg("overview: almacén inaccesible al listar usuarios")
		return uc.zeroPayload(usersRes.err), domain.ErrStoreUnavailable
	}
	if pkgsRes.err != nil {
		uc.log.Error().Err(pkgsRes.err).Msg("overview: almacén inaccesible al listar planes")
		return uc.zeroPayload(pkgsRes.err), domain.ErrStoreUnavailable
	}

	out := uc.aggregate(regs, usersRes.users, pkgsRes.pkgs)
	out.Fallback = fallback
	return out, nil
}

// aggregate es la composición pura: clasificador + ingresos + histogramas +
// tendencia + actividad + conteos de usuarios.
func (uc *OverviewUseCase) aggregate(
	regs []*entity.Registration,
	users []*entity.User,
	pkgs []*entity.Package,
) *dto.OverviewDTO {
	now := uc.now()
	out := &dto.OverviewDTO{TotalCompanies: len(regs)}

	for _, r := range regs {
		if lifecycle.IsCompleted(r) {
			out.CompletedCompanies++
		} else {
			out.PendingCompanies++
		}
		if lifecycle.IsPaymentProcessing(r) {
			out.PaymentProcessing++
		}
		if lifecycle.IsPaymentApproved(r) {
			out.PaymentApproved++
		}
		if lifecycle.IsPaymentRejected(r) {
			out.PaymentRejected++
		}
	}

	steps := lifecycle.CountSteps(regs)
	out.StepContactDetails = steps.ContactDetails
	out.StepCompanyDetails = steps.CompanyDetails
	out.StepDocumentation = steps.Documentation
	out.StepIncorporate = steps.Incorporate

	out.ProvinceData = lifecycle.LocationData(regs, func(r *entity.Registration) string { return r.Province })
	out.DistrictData = lifecycle.LocationData(regs, func(r *entity.Registration) string { return r.District })
	out.DivisionalSecretariatData = lifecycle.LocationData(regs, func(r *entity.Registration) string { return r.DivisionalSecretariat })
	out.PackageData = lifecycle.PackageData(regs, pkgs)

	out.MonthlyTrend = lifecycle.MonthlyTrend(regs, now)
	out.RecentActivity = lifecycle.RecentActivity(regs, recentActivityLimit)

	revenue := lifecycle.CalculateRevenue(regs, pkgs, now)
	out.EstimatedRevenue = revenue.Estimated
	out.AdvancePaymentsApproved = revenue.AdvanceApproved
	out.BalancePaymentsApproved = revenue.BalanceApproved
	out.MonthlyRevenue = revenue.Monthly
	if len(revenue.UnmatchedPackages) > 0 {
		// Comportamiento legado: los planes rotos aportan cero sin error, pero
		// se dejan rastreados para detectar el problema de integridad.
		uc.log.Warn().
			Strs("package_ids", revenue.UnmatchedPackages).
			Msg("overview: registros con plan inexistente en el catálogo")
	}

	for _, u := range users {
		if u.EmailVerified {
			out.VerifiedUsers++
		} else {
			out.UnverifiedUsers++
		}
		switch u.Role {
		case entity.RoleAdmin:
			out.AdminUsers++
		case entity.RoleCustomer:
			out.CustomerUsers++
		}
	}

	return out
}

// zeroPayload devuelve el shape completo del dashboard con todos los valores
// en cero: el UI siempre recibe algo renderizable aunque el almacén esté caído.
func (uc *OverviewUseCase) zeroPayload(cause error) *dto.OverviewDTO {
	return &dto.OverviewDTO{
		ProvinceData:              []lifecycle.Bucket{},
		DistrictData:              []lifecycle.Bucket{},
		DivisionalSecretariatData: []lifecycle.Bucket{},
		PackageData:               []lifecycle.Bucket{},
		MonthlyTrend:              lifecycle.MonthlyTrend(nil, uc.now()),
		RecentActivity:            []lifecycle.ActivityItem{},
		EstimatedRevenue:          decimal.Zero,
		AdvancePaymentsApproved:   decimal.Zero,
		BalancePaymentsApproved:   decimal.Zero,
		MonthlyRevenue:            decimal.Zero,
		Fallback:                  true,
		Error:                     cause.Error(),
	}
}

// placeholderRegistrations devuelve el conjunto fijo documentado que sustituye
// filas ilegibles. Los ids "placeholder-N" son el contrato con el caller para
// distinguir fallback de datos reales.
func placeholderRegistrations(now time.Time) []*entity.Registration {
	return []*entity.Registration{
		{
			ID:          "placeholder-1",
			CompanyName: "Sample Company A",
			Status:      entity.StatusPaymentProcessing,
			CurrentStep: entity.StepContactDetails,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "placeholder-2",
			CompanyName: "Sample Company B",
			Status:      entity.StatusDocumentsPending,
			CurrentStep: entity.StepDocumentation,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:                "placeholder-3",
			CompanyName:       "Sample Company C",
			Status:            entity.StatusCompleted,
			CurrentStep:       entity.StepIncorporate,
			DocumentsApproved: true,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
	}
}
