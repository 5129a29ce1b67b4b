package dto

import "time"

// AutoAllocateRequest pedido de reserva automática de posição para um pallet.
type AutoAllocateRequest struct {
	PalletID    string `json:"pallet_id" validate:"required"`
	WarehouseID string `json:"warehouse_id" validate:"required"`
}

// AutoAllocateResponse posição reservada e validade do hold.
type AutoAllocateResponse struct {
	PositionID    string    `json:"position_id"`
	PositionCode  string    `json:"position_code"`
	ReservedUntil time.Time `json:"reserved_until"`
}

// ConfirmAllocationRequest confirmação manual ou via coletor.
// Para method=scanner, scanned_pallet_code e scanned_position_code são obrigatórios.
type ConfirmAllocationRequest struct {
	PalletID            string `json:"pallet_id" validate:"required"`
	PositionID          string `json:"position_id" validate:"required"`
	Method              string `json:"method" validate:"required,oneof=manual scanner"`
	ScannedPalletCode   string `json:"scanned_pallet_code"`
	ScannedPositionCode string `json:"scanned_position_code"`
}

// ReallocateRequest remanejamento de um pallet alocado para outra posição.
type ReallocateRequest struct {
	PalletID              string `json:"pallet_id" validate:"required"`
	DestinationPositionID string `json:"destination_position_id" validate:"required"`
	Notes                 string `json:"notes"`
}

// AllocationResponse estado da alocação após uma operação do motor.
type AllocationResponse struct {
	ID          string    `json:"id"`
	PalletID    string    `json:"pallet_id"`
	PositionID  string    `json:"position_id"`
	Status      string    `json:"status"`
	AllocatedAt time.Time `json:"allocated_at"`
	AllocatedBy string    `json:"allocated_by"`
	Notes       string    `json:"notes,omitempty"`
}

// PositionResponse posição disponível devolvida nas consultas de endereço.
type PositionResponse struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	Occupied      bool       `json:"occupied"`
	ReservedUntil *time.Time `json:"reserved_until,omitempty"`
}
