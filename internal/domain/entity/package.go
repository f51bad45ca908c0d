package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package representa un plan de servicio de incorporación con precio dividido
// en anticipo y saldo, aprobables de forma independiente.
type Package struct {
	ID            string
	Name          string
	Price         decimal.Decimal // precio total del plan
	AdvanceAmount decimal.Decimal // anticipo
	BalanceAmount decimal.Decimal // saldo
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
