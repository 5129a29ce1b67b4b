package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LotBalance é o saldo materializado de um lote de produto em um armazém,
// mantido pelo razão de estoque a cada lançamento efetivado.
type LotBalance struct {
	ProductID   string
	WarehouseID string
	Lot         string
	Remaining   decimal.Decimal
	ExpiryDate  *time.Time
	UpdatedAt   time.Time
}
