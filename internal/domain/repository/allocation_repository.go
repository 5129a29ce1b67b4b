package repository

import (
	"context"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
)

// AllocationRepository define o porto de persistência de alocações pallet↔posição.
// A unicidade de alocação ativa por pallet e por posição é garantida na base
// (índices parciais); Create devolve domain.ErrConflict na violação.
type AllocationRepository interface {
	Create(ctx context.Context, alloc *entity.Allocation) error
	GetActiveByPallet(ctx context.Context, palletID string) (*entity.Allocation, error)
	// Update persiste status, posição, notas e carimbo de uma alocação existente.
	Update(ctx context.Context, alloc *entity.Allocation) error
}
