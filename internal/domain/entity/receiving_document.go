package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de aprovação do documento de recebimento (enumeração fechada).
const (
	ReceivingStatusAwaitingTransport  = "awaiting_transport"
	ReceivingStatusInTransfer         = "in_transfer"
	ReceivingStatusAwaitingConference = "awaiting_conference"
	ReceivingStatusConferenceComplete = "conference_complete"
	ReceivingStatusConfirmed          = "confirmed"
	ReceivingStatusRejected           = "rejected"
	ReceivingStatusPlanning           = "planning"
)

// ReceivingDocument representa um documento de recebimento (nota de entrada) de uma franquia.
type ReceivingDocument struct {
	ID             string
	WarehouseID    string
	FranchiseID    string
	ApprovalStatus string
	Items          []ReceivingLineItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReceivingLineItem é uma linha esperada do documento de recebimento.
type ReceivingLineItem struct {
	ID                  string
	ReceivingDocumentID string
	ProductID           string
	Lot                 string
	ExpiryDate          *time.Time
	Quantity            decimal.Decimal
	UnitValue           decimal.Decimal
}
