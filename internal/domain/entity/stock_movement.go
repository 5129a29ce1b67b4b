package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimento de estoque.
const (
	MovementKindIn  = "in"
	MovementKindOut = "out"
)

// Tipos de referência que originam movimentos.
const (
	ReferencePalletAllocation   = "pallet_allocation"
	ReferenceReceivingDocument  = "receiving_document"
	ReferenceOutboundShipment   = "outbound_shipment"
)

// StockMovement é um lançamento imutável do razão de estoque.
// Chave de idempotência: (ReferenceID, ReferenceType, ProductID, Lot) — a confirmação
// repetida de um pallet nunca duplica lançamentos.
type StockMovement struct {
	ID            string
	ProductID     string
	WarehouseID   string
	Kind          string
	Quantity      decimal.Decimal
	UnitValue     decimal.Decimal
	Lot           string
	ExpiryDate    *time.Time
	ReferenceID   string
	ReferenceType string
	OccurredAt    time.Time
	CreatedBy     string
}
