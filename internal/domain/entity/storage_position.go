package entity

import "time"

// StoragePosition representa um endereço físico de armazenagem (posição) dentro de um armazém.
// Code é único por armazém (ex.: "A-001").
type StoragePosition struct {
	ID            string
	WarehouseID   string
	Code          string
	Active        bool
	Occupied      bool
	ReservedUntil *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAvailable indica se a posição pode receber um pallet no instante dado.
// Uma reserva expirada conta como livre sem depender de varredura de limpeza.
func (p *StoragePosition) IsAvailable(now time.Time) bool {
	if !p.Active || p.Occupied {
		return false
	}
	return p.ReservedUntil == nil || p.ReservedUntil.Before(now)
}
