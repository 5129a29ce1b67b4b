package entity

import "time"

// Status do vínculo pallet↔posição.
const (
	AllocationStatusReserved  = "reserved"
	AllocationStatusAllocated = "allocated"
	AllocationStatusRemoved   = "removed"
)

// Métodos de confirmação de alocação.
const (
	ConfirmMethodManual  = "manual"
	ConfirmMethodScanner = "scanner"
)

// Allocation é o vínculo ativo entre um pallet e uma posição de armazenagem.
// No máximo uma alocação reserved/allocated por pallet e por posição; o histórico
// (removed) é preservado para auditoria de remanejamentos.
type Allocation struct {
	ID          string
	PalletID    string
	PositionID  string
	Status      string
	AllocatedAt time.Time
	AllocatedBy string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive indica se a alocação ainda prende a posição (reserved ou allocated).
func (a *Allocation) IsActive() bool {
	return a.Status == AllocationStatusReserved || a.Status == AllocationStatusAllocated
}
