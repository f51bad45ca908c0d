package analytics_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Incorpora-api/internal/application/analytics"
	"github.com/jhoicas/Incorpora-api/internal/domain"
	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
	"github.com/jhoicas/Incorpora-api/internal/domain/repository"
	"github.com/jhoicas/Incorpora-api/pkg/logger"
)

// ─────────────────────────────────────────────────────────────
// Dobles en memoria
// ─────────────────────────────────────────────────────────────

type stubRegRepo struct {
	repository.RegistrationRepository
	listAll func(ctx context.Context) ([]*entity.Registration, error)
}

func (s *stubRegRepo) ListAll(ctx context.Context) ([]*entity.Registration, error) {
	return s.listAll(ctx)
}

type stubUserRepo struct {
	repository.UserRepository
	listAll func(ctx context.Context) ([]*entity.User, error)
}

func (s *stubUserRepo) ListAll(ctx context.Context) ([]*entity.User, error) {
	return s.listAll(ctx)
}

type stubPkgRepo struct {
	repository.PackageRepository
	listAll func(ctx context.Context) ([]*entity.Package, error)
}

func (s *stubPkgRepo) ListAll(ctx context.Context) ([]*entity.Package, error) {
	return s.listAll(ctx)
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	}
}

func newOverviewUC(regs []*entity.Registration, users []*entity.User, pkgs []*entity.Package) *analytics.OverviewUseCase {
	return analytics.NewOverviewUseCase(
		&stubRegRepo{listAll: func(context.Context) ([]*entity.Registration, error) { return regs, nil }},
		&stubUserRepo{listAll: func(context.Context) ([]*entity.User, error) { return users, nil }},
		&stubPkgRepo{listAll: func(context.Context) ([]*entity.Package, error) { return pkgs, nil }},
		logger.Nop(),
	).WithClock(fixedClock())
}

// ─────────────────────────────────────────────────────────────
// Agregación feliz
// ─────────────────────────────────────────────────────────────

func TestGetOverview_AgregaConteosEIngresos(t *testing.T) {
	now := fixedClock()()
	pkgs := []*entity.Package{
		{
			ID:            "pkg-basic",
			Name:          "Basic",
			Price:         decimal.NewFromInt(50000),
			AdvanceAmount: decimal.NewFromInt(30000),
			BalanceAmount: decimal.NewFromInt(20000),
		},
	}
	regs := []*entity.Registration{
		{
			ID:              "r1",
			CompanyName:     "Acme",
			Status:          entity.StatusCompleted,
			CurrentStep:     entity.StepIncorporate,
			PaymentApproved: true,
			PaymentReceipt:  &entity.Receipt{FileID: "f1", Status: entity.ReceiptStatusApproved},
			SelectedPackage: "pkg-basic",
			Province:        "Western",
			CreatedAt:       now.AddDate(0, -1, 0),
			UpdatedAt:       now,
		},
		{
			ID:          "r2",
			CompanyName: "Beta",
			Status:      entity.StatusPaymentProcessing,
			CurrentStep: entity.StepContactDetails,
			Province:    "western",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
	users := []*entity.User{
		{ID: "u1", Role: entity.RoleAdmin, EmailVerified: true},
		{ID: "u2", Role: entity.RoleCustomer, EmailVerified: false},
		{ID: "u3", Role: entity.RoleCustomer, EmailVerified: true},
	}

	out, err := newOverviewUC(regs, users, pkgs).GetOverview(context.Background())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, 2, out.TotalCompanies)
	assert.Equal(t, 1, out.CompletedCompanies)
	assert.Equal(t, 1, out.PendingCompanies, "pendientes debe ser el complemento de completadas")
	assert.Equal(t, 1, out.StepContactDetails)
	assert.Equal(t, 1, out.StepIncorporate)
	assert.Equal(t, 1, out.PaymentProcessing)
	assert.Equal(t, 1, out.PaymentApproved)
	assert.Equal(t, 0, out.PaymentRejected)

	// Ambas variantes de "Western" se agrupan en un solo bucket.
	require.Len(t, out.ProvinceData, 1)
	assert.Equal(t, "Western", out.ProvinceData[0].Name)
	assert.Equal(t, 2, out.ProvinceData[0].Count)

	// r1 aporta solo el anticipo aprobado (sin recibo de saldo); r2 no aporta nada.
	assert.True(t, out.EstimatedRevenue.Equal(decimal.NewFromInt(30000)))
	assert.True(t, out.AdvancePaymentsApproved.Equal(decimal.NewFromInt(30000)))
	assert.True(t, out.BalancePaymentsApproved.Equal(decimal.Zero))
	assert.True(t, out.MonthlyRevenue.Equal(decimal.NewFromInt(30000)), "r1 fue tocada este mes")

	assert.Equal(t, 2, out.VerifiedUsers)
	assert.Equal(t, 1, out.UnverifiedUsers)
	assert.Equal(t, 1, out.AdminUsers)
	assert.Equal(t, 2, out.CustomerUsers)

	assert.Len(t, out.MonthlyTrend, 12)
	assert.False(t, out.Fallback)
	assert.Empty(t, out.Error)
}

func TestGetOverview_ActividadRecienteOrdenadaYLimitada(t *testing.T) {
	now := fixedClock()()
	var regs []*entity.Registration
	for i := 0; i < 12; i++ {
		regs = append(regs, &entity.Registration{
			ID:          fmt.Sprintf("r%d", i),
			CompanyName: fmt.Sprintf("Empresa %d", i),
			Status:      entity.StatusPaymentProcessing,
			CurrentStep: entity.StepContactDetails,
			CreatedAt:   now.Add(-time.Duration(i) * time.Hour),
		})
	}

	out, err := newOverviewUC(regs, nil, nil).GetOverview(context.Background())
	require.NoError(t, err)

	require.Len(t, out.RecentActivity, 10)
	assert.Equal(t, "r0", out.RecentActivity[0].ID, "la más reciente va primero")
	assert.Equal(t, "r9", out.RecentActivity[9].ID)
}

// ─────────────────────────────────────────────────────────────
// Degradación: almacén caído y lectura parcial
// ─────────────────────────────────────────────────────────────

func TestGetOverview_AlmacenCaidoDevuelvePayloadEnCeros(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	uc := analytics.NewOverviewUseCase(
		&stubRegRepo{listAll: func(context.Context) ([]*entity.Registration, error) { return nil, cause }},
		&stubUserRepo{listAll: func(context.Context) ([]*entity.User, error) { return nil, nil }},
		&stubPkgRepo{listAll: func(context.Context) ([]*entity.Package, error) { return nil, nil }},
		logger.Nop(),
	).WithClock(fixedClock())

	out, err := uc.GetOverview(context.Background())
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	require.NotNil(t, out, "aun con error el payload debe ser renderizable")

	assert.True(t, out.Fallback)
	assert.Contains(t, out.Error, "connection refused")
	assert.Zero(t, out.TotalCompanies)
	assert.True(t, out.EstimatedRevenue.Equal(decimal.Zero))
	assert.NotNil(t, out.ProvinceData, "los slices van vacíos, nunca nil")
	assert.Len(t, out.MonthlyTrend, 12, "la serie mensual conserva su shape en ceros")
	for _, p := range out.MonthlyTrend {
		assert.Zero(t, p.Count)
	}
}

func TestGetOverview_FalloDeUsuariosTambienDegrada(t *testing.T) {
	uc := analytics.NewOverviewUseCase(
		&stubRegRepo{listAll: func(context.Context) ([]*entity.Registration, error) { return nil, nil }},
		&stubUserRepo{listAll: func(context.Context) ([]*entity.User, error) { return nil, errors.New("boom") }},
		&stubPkgRepo{listAll: func(context.Context) ([]*entity.Package, error) { return nil, nil }},
		logger.Nop(),
	).WithClock(fixedClock())

	out, err := uc.GetOverview(context.Background())
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.True(t, out.Fallback)
}

func TestGetOverview_LecturaParcialSustituyePlaceholders(t *testing.T) {
	partial := fmt.Errorf("scan fila 3: %w", domain.ErrPartialRead)
	uc := analytics.NewOverviewUseCase(
		&stubRegRepo{listAll: func(context.Context) ([]*entity.Registration, error) { return nil, partial }},
		&stubUserRepo{listAll: func(context.Context) ([]*entity.User, error) { return nil, nil }},
		&stubPkgRepo{listAll: func(context.Context) ([]*entity.Package, error) { return nil, nil }},
		logger.Nop(),
	).WithClock(fixedClock())

	out, err := uc.GetOverview(context.Background())
	require.NoError(t, err, "la lectura parcial no se propaga como error")
	require.NotNil(t, out)

	assert.True(t, out.Fallback)
	assert.Equal(t, 3, out.TotalCompanies, "los placeholders se agregan como datos normales")

	ids := make([]string, 0, len(out.RecentActivity))
	for _, a := range out.RecentActivity {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "placeholder-1")
	assert.Contains(t, ids, "placeholder-3")

	// placeholder-3 está completada (status completed + paso incorporate).
	assert.Equal(t, 1, out.CompletedCompanies)
	assert.Equal(t, 2, out.PendingCompanies)
}
