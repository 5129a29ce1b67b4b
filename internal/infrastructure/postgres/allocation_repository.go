package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo implementação de AllocationRepository sobre PostgreSQL (pool ou tx).
// A unicidade de alocação ativa por pallet e por posição vem de índices parciais
// (status IN reserved/allocated); a violação vira domain.ErrConflict.
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

// Create persiste uma nova alocação.
func (r *AllocationRepo) Create(ctx context.Context, alloc *entity.Allocation) error {
	query := `
		INSERT INTO pallet_allocations (id, pallet_id, position_id, status, allocated_at, allocated_by, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	_, err := r.q.Exec(ctx, query,
		alloc.ID, alloc.PalletID, alloc.PositionID, alloc.Status,
		alloc.AllocatedAt, alloc.AllocatedBy, alloc.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create allocation: %w", err)
	}
	return nil
}

// GetActiveByPallet obtém a alocação ativa (reserved/allocated) do pallet, se houver.
func (r *AllocationRepo) GetActiveByPallet(ctx context.Context, palletID string) (*entity.Allocation, error) {
	query := `
		SELECT id, pallet_id, position_id, status, allocated_at, allocated_by, notes, created_at, updated_at
		FROM pallet_allocations
		WHERE pallet_id = $1 AND status IN ('reserved', 'allocated')`
	var a entity.Allocation
	err := r.q.QueryRow(ctx, query, palletID).Scan(
		&a.ID, &a.PalletID, &a.PositionID, &a.Status,
		&a.AllocatedAt, &a.AllocatedBy, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active allocation: %w", err)
	}
	return &a, nil
}

// Update persiste status, posição, notas e carimbos de uma alocação existente.
func (r *AllocationRepo) Update(ctx context.Context, alloc *entity.Allocation) error {
	query := `
		UPDATE pallet_allocations
		SET position_id = $2, status = $3, allocated_at = $4, allocated_by = $5, notes = $6, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		alloc.ID, alloc.PositionID, alloc.Status, alloc.AllocatedAt, alloc.AllocatedBy, alloc.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update allocation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
