package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Incorpora-api/internal/domain/lifecycle"
)

// OverviewDTO payload completo del dashboard administrativo.
//
// Siempre es un shape renderizable: cuando el almacén de datos no responde,
// el agregador devuelve este mismo struct con ceros y Fallback=true en lugar
// de fallar, y el handler lo envía con HTTP 503.
type OverviewDTO struct {
	// Conteos de empresas
	TotalCompanies     int `json:"total_companies"`
	CompletedCompanies int `json:"completed_companies"`
	PendingCompanies   int `json:"pending_companies"`

	// Conteos por paso del asistente
	StepContactDetails int `json:"step_contact_details"`
	StepCompanyDetails int `json:"step_company_details"`
	StepDocumentation  int `json:"step_documentation"`
	StepIncorporate    int `json:"step_incorporate"`

	// Conteos por estado de pago
	PaymentProcessing int `json:"payment_processing"`
	PaymentApproved   int `json:"payment_approved"`
	PaymentRejected   int `json:"payment_rejected"`

	// Histogramas
	ProvinceData              []lifecycle.Bucket `json:"province_data"`
	DistrictData              []lifecycle.Bucket `json:"district_data"`
	DivisionalSecretariatData []lifecycle.Bucket `json:"divisional_secretariat_data"`
	PackageData               []lifecycle.Bucket `json:"package_data"`

	// Serie de 12 meses y feed de actividad
	MonthlyTrend   []lifecycle.TrendPoint   `json:"monthly_trend"`
	RecentActivity []lifecycle.ActivityItem `json:"recent_activity"`

	// Ingresos
	EstimatedRevenue        decimal.Decimal `json:"estimated_revenue"`
	AdvancePaymentsApproved decimal.Decimal `json:"advance_payments_approved"`
	BalancePaymentsApproved decimal.Decimal `json:"balance_payments_approved"`
	MonthlyRevenue          decimal.Decimal `json:"monthly_revenue"`

	// Conteos de usuarios
	VerifiedUsers   int `json:"verified_users"`
	UnverifiedUsers int `json:"unverified_users"`
	AdminUsers      int `json:"admin_users"`
	CustomerUsers   int `json:"customer_users"`

	// Fallback es true cuando el payload no proviene de datos reales: ceros
	// por almacén caído, o placeholders por error de lectura a nivel de fila.
	Fallback bool   `json:"fallback,omitempty"`
	Error    string `json:"error,omitempty"`
}
