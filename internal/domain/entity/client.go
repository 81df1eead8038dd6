package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client representa un cliente con posibilidad de compra a crédito.
// TotalDebt es un acumulado desnormalizado que debe coincidir en todo momento
// con la suma de saldos pendientes de sus Debts; cada mutación del libro de
// deudas lo mantiene, nunca se recalcula de forma diferida.
type Client struct {
	ID        string
	Name      string
	Phone     string
	TotalDebt decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
