package dto

import "github.com/shopspring/decimal"

// DiscrepancyInput divergência reportada pelo conferente na confirmação.
// Kind é texto livre; o motor classifica para a taxonomia fixa.
type DiscrepancyInput struct {
	ProductID   string           `json:"product_id" validate:"required"`
	Kind        string           `json:"kind"`
	ExpectedQty decimal.Decimal  `json:"expected_qty"`
	FoundQty    decimal.Decimal  `json:"found_qty"`
	Lot         string           `json:"lot"`
	Priority    string           `json:"priority"` // vazio = prioridade padrão da categoria
	DamagedQty  *decimal.Decimal `json:"damaged_qty"`
	Notes       string           `json:"notes"`
}

// ReconcileConfirmationRequest confirmação de um documento de recebimento.
type ReconcileConfirmationRequest struct {
	Discrepancies []DiscrepancyInput `json:"discrepancies"`
}

// ReconcileConfirmationResponse resultado da reconciliação.
type ReconcileConfirmationResponse struct {
	DiscrepanciesCreated int  `json:"discrepancies_created"`
	StockPosted          bool `json:"stock_posted"`
}

// DiscrepancyResponse divergência persistida de um documento.
type DiscrepancyResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Kind        string          `json:"kind"`
	ExpectedQty decimal.Decimal `json:"expected_qty"`
	FoundQty    decimal.Decimal `json:"found_qty"`
	Lot         string          `json:"lot,omitempty"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority"`
	Notes       string          `json:"notes,omitempty"`
}
