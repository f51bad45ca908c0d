package lifecycle_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
	"github.com/jhoicas/Incorpora-api/internal/domain/lifecycle"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func paqueteP1() *entity.Package {
	return &entity.Package{
		ID:            "P1",
		Name:          "Premium",
		Price:         decimal.NewFromInt(50000),
		AdvanceAmount: decimal.NewFromInt(30000),
		BalanceAmount: decimal.NewFromInt(20000),
		IsActive:      true,
	}
}

func reciboAprobado() *entity.Receipt {
	return &entity.Receipt{FileID: "f1", Status: entity.ReceiptStatusApproved}
}

func reciboPendiente() *entity.Receipt {
	return &entity.Receipt{FileID: "f2", Status: entity.ReceiptStatusPending}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios de la calculadora de ingresos
// ──────────────────────────────────────────────────────────────────────────────

// Escenario del contrato: anticipo aprobado con recibo, sin recibo de saldo.
// Solo el anticipo (30000) debe contribuir.
func TestCalculateRevenue_SoloAnticipoAprobado(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	regs := []*entity.Registration{{
		ID:              "r1",
		PaymentApproved: true,
		PaymentReceipt:  reciboPendiente(), // basta la presencia, no el status
		SelectedPackage: "P1",
		UpdatedAt:       now,
	}}

	rep := lifecycle.CalculateRevenue(regs, []*entity.Package{paqueteP1()}, now)

	assert.True(t, rep.AdvanceApproved.Equal(decimal.NewFromInt(30000)),
		"advancePaymentsApproved debe sumar 30000, obtuvo %s", rep.AdvanceApproved)
	assert.True(t, rep.BalanceApproved.IsZero(),
		"sin recibo de saldo no debe sumar balance")
	assert.True(t, rep.Estimated.Equal(decimal.NewFromInt(30000)))
	assert.Empty(t, rep.UnmatchedPackages)
}

// Las dos condiciones son independientes y ambas pueden contribuir para el
// mismo registro: anticipo + saldo = 50000 en estimated.
func TestCalculateRevenue_AnticipoYSaldoEnElMismoRegistro(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	regs := []*entity.Registration{{
		ID:                    "r1",
		PaymentApproved:       true,
		PaymentReceipt:        reciboAprobado(),
		BalancePaymentReceipt: reciboAprobado(),
		SelectedPackage:       "P1",
		UpdatedAt:             now,
	}}

	rep := lifecycle.CalculateRevenue(regs, []*entity.Package{paqueteP1()}, now)

	assert.True(t, rep.Estimated.Equal(decimal.NewFromInt(50000)))
	assert.True(t, rep.AdvanceApproved.Equal(decimal.NewFromInt(30000)))
	assert.True(t, rep.BalanceApproved.Equal(decimal.NewFromInt(20000)))
}

// Saldo con recibo presente pero no aprobado: no contribuye.
func TestCalculateRevenue_SaldoPendienteNoSuma(t *testing.T) {
	now := time.Now()
	regs := []*entity.Registration{{
		BalancePaymentReceipt: reciboPendiente(),
		SelectedPackage:       "P1",
		UpdatedAt:             now,
	}}
	rep := lifecycle.CalculateRevenue(regs, []*entity.Package{paqueteP1()}, now)
	assert.True(t, rep.Estimated.IsZero())
	assert.True(t, rep.BalanceApproved.IsZero())
}

// Propiedad: un registro cuyo plan no existe en el catálogo contribuye
// exactamente cero, sin error, y el id queda reportado para el warning.
func TestCalculateRevenue_PlanDesconocidoContribuyeCero(t *testing.T) {
	now := time.Now()
	regs := []*entity.Registration{{
		PaymentApproved:       true,
		PaymentReceipt:        reciboAprobado(),
		BalancePaymentReceipt: reciboAprobado(),
		SelectedPackage:       "plan-eliminado",
		UpdatedAt:             now,
	}}

	rep := lifecycle.CalculateRevenue(regs, []*entity.Package{paqueteP1()}, now)

	assert.True(t, rep.Estimated.IsZero(), "plan sin match debe aportar cero")
	require.Len(t, rep.UnmatchedPackages, 1)
	assert.Equal(t, "plan-eliminado", rep.UnmatchedPackages[0])
}

// Registro sin plan seleccionado: cero aporte y sin warning (vacío no es un id roto).
func TestCalculateRevenue_SinPlanSeleccionado(t *testing.T) {
	now := time.Now()
	regs := []*entity.Registration{{
		PaymentApproved: true,
		PaymentReceipt:  reciboAprobado(),
		UpdatedAt:       now,
	}}
	rep := lifecycle.CalculateRevenue(regs, []*entity.Package{paqueteP1()}, now)
	assert.True(t, rep.Estimated.IsZero())
	assert.Empty(t, rep.UnmatchedPackages)
}

// Monthly solo cuenta registros tocados dentro del mes calendario actual;
// UpdatedAt tiene prioridad y CreatedAt es el fallback.
func TestCalculateRevenue_MonthlyAcotadoAlMes(t *testing.T) {
	now := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	esteMes := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)
	mesPasado := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)

	regs := []*entity.Registration{
		{PaymentApproved: true, PaymentReceipt: reciboAprobado(), SelectedPackage: "P1", UpdatedAt: esteMes},
		{PaymentApproved: true, PaymentReceipt: reciboAprobado(), SelectedPackage: "P1", UpdatedAt: mesPasado},
		// Sin UpdatedAt: cae al CreatedAt dentro del mes
		{PaymentApproved: true, PaymentReceipt: reciboAprobado(), SelectedPackage: "P1", CreatedAt: esteMes},
	}

	rep := lifecycle.CalculateRevenue(regs, []*entity.Package{paqueteP1()}, now)

	assert.True(t, rep.Monthly.Equal(decimal.NewFromInt(60000)),
		"monthly debe sumar solo los dos registros del mes: obtuvo %s", rep.Monthly)
	assert.True(t, rep.Estimated.Equal(decimal.NewFromInt(90000)),
		"estimated no se acota por mes")
}

// Anticipo aprobado pero sin recibo presente: no contribuye (las dos
// condiciones del anticipo son conjuntas).
func TestCalculateRevenue_AnticipoSinReciboNoSuma(t *testing.T) {
	now := time.Now()
	regs := []*entity.Registration{{
		PaymentApproved: true,
		SelectedPackage: "P1",
		UpdatedAt:       now,
	}}
	rep := lifecycle.CalculateRevenue(regs, []*entity.Package{paqueteP1()}, now)
	assert.True(t, rep.AdvanceApproved.IsZero())
	assert.True(t, rep.Estimated.IsZero())
}
