package lifecycle

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
)

// PackagePrice montos de anticipo y saldo de un plan, para el lookup de ingresos.
type PackagePrice struct {
	Advance decimal.Decimal
	Balance decimal.Decimal
}

// RevenueReport totales monetarios derivados del estado de aprobación y los
// precios de los planes. Nunca negativos; planes desconocidos aportan cero.
type RevenueReport struct {
	// Estimated: anticipos aprobados + saldos aprobados, ambos pueden
	// contribuir para el mismo registro (condiciones independientes).
	Estimated       decimal.Decimal
	AdvanceApproved decimal.Decimal
	BalanceApproved decimal.Decimal
	// Monthly: mismas dos condiciones, acotadas al mes calendario de `now`
	// sobre UpdatedAt (fallback CreatedAt).
	Monthly decimal.Decimal

	// UnmatchedPackages ids de plan referenciados por algún registro pero
	// ausentes del catálogo. El caller decide si los reporta (warning).
	UnmatchedPackages []string
}

// BuildPriceIndex construye el lookup packageID → {advance, balance}.
// Los montos cero del catálogo se conservan tal cual (decimal-safe).
func BuildPriceIndex(pkgs []*entity.Package) map[string]PackagePrice {
	index := make(map[string]PackagePrice, len(pkgs))
	for _, p := range pkgs {
		index[p.ID] = PackagePrice{Advance: p.AdvanceAmount, Balance: p.BalanceAmount}
	}
	return index
}

// CalculateRevenue computa los cuatro totales de ingresos del dashboard.
//
// Condición de anticipo: PaymentApproved && PaymentReceipt presente.
// Condición de saldo:    BalancePaymentReceipt presente con status "approved".
// Un registro puede cumplir ambas y aportar dos veces a Estimated.
// Un SelectedPackage sin match en el catálogo aporta {0, 0} sin error.
func CalculateRevenue(
	regs []*entity.Registration,
	pkgs []*entity.Package,
	now time.Time,
) RevenueReport {
	index := BuildPriceIndex(pkgs)

	report := RevenueReport{
		Estimated:       decimal.Zero,
		AdvanceApproved: decimal.Zero,
		BalanceApproved: decimal.Zero,
		Monthly:         decimal.Zero,
	}
	seenUnmatched := map[string]bool{}

	for _, r := range regs {
		price, ok := index[r.SelectedPackage]
		if !ok {
			if r.SelectedPackage != "" && !seenUnmatched[r.SelectedPackage] {
				seenUnmatched[r.SelectedPackage] = true
				report.UnmatchedPackages = append(report.UnmatchedPackages, r.SelectedPackage)
			}
			price = PackagePrice{Advance: decimal.Zero, Balance: decimal.Zero}
		}

		advanceOK := r.PaymentApproved && r.PaymentReceipt != nil
		balanceOK := r.BalancePaymentReceipt.Approved()

		var contribution decimal.Decimal
		if advanceOK {
			report.AdvanceApproved = report.AdvanceApproved.Add(price.Advance)
			contribution = contribution.Add(price.Advance)
		}
		if balanceOK {
			report.BalanceApproved = report.BalanceApproved.Add(price.Balance)
			contribution = contribution.Add(price.Balance)
		}
		report.Estimated = report.Estimated.Add(contribution)

		if (advanceOK || balanceOK) && sameMonth(r.LastTouched(), now) {
			report.Monthly = report.Monthly.Add(contribution)
		}
	}

	return report
}

// sameMonth informa si a y b caen en el mismo mes y año calendario.
func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
