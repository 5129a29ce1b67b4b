package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LotCandidateResponse lote candidato à baixa, na ordem FEFO.
type LotCandidateResponse struct {
	Lot          string          `json:"lot"`
	RemainingQty decimal.Decimal `json:"remaining_qty"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	DaysToExpire *int            `json:"days_to_expire,omitempty"`
}

// DepleteRequest baixa de estoque contra um lote escolhido.
type DepleteRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	Lot         string          `json:"lot" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	ReferenceID string          `json:"reference_id" validate:"required"`
}

// DepleteResponse saldo do lote após a baixa.
type DepleteResponse struct {
	Lot          string          `json:"lot"`
	RemainingQty decimal.Decimal `json:"remaining_qty"`
}
