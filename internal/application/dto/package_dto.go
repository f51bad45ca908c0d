package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePackageRequest alta de un plan de servicio.
type CreatePackageRequest struct {
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	AdvanceAmount decimal.Decimal `json:"advance_amount"`
	BalanceAmount decimal.Decimal `json:"balance_amount"`
}

// UpdatePackageRequest actualización de un plan existente.
type UpdatePackageRequest struct {
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	AdvanceAmount decimal.Decimal `json:"advance_amount"`
	BalanceAmount decimal.Decimal `json:"balance_amount"`
	IsActive      *bool           `json:"is_active,omitempty"`
}

// PackageResponse proyección de un plan.
type PackageResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	AdvanceAmount decimal.Decimal `json:"advance_amount"`
	BalanceAmount decimal.Decimal `json:"balance_amount"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PackageListResponse listado de planes.
type PackageListResponse struct {
	Items []PackageResponse `json:"items"`
}
