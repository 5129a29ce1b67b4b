package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Taxonomia fixa de divergências de recebimento.
const (
	DiscrepancyKindMissingProduct = "missing_product"
	DiscrepancyKindExcessProduct  = "excess_product"
	DiscrepancyKindWrongQuantity  = "wrong_quantity"
	DiscrepancyKindWrongLot       = "wrong_lot"
	DiscrepancyKindWrongExpiry    = "wrong_expiry"
	DiscrepancyKindDamage         = "damage"
)

// Status e prioridade de tratamento.
const (
	DiscrepancyStatusPending  = "pending"
	DiscrepancyStatusResolved = "resolved"

	DiscrepancyPriorityLow    = "low"
	DiscrepancyPriorityMedium = "medium"
	DiscrepancyPriorityHigh   = "high"
)

// DiscrepancyOriginReceiving origem fixa das divergências registradas por este motor.
const DiscrepancyOriginReceiving = "receiving"

// Discrepancy registra uma divergência entre o esperado e o efetivamente recebido.
// Independe do caminho de lançamento de estoque escolhido na confirmação.
type Discrepancy struct {
	ID                  string
	ReceivingDocumentID string
	ProductID           string
	OriginType          string
	Kind                string
	ExpectedQty         decimal.Decimal
	FoundQty            decimal.Decimal
	Lot                 string
	Status              string
	Priority            string
	Notes               string
	CreatedAt           time.Time
	CreatedBy           string
}
