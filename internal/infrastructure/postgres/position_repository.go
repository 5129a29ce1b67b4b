package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

var _ repository.PositionRepository = (*PositionRepo)(nil)

// PositionRepo implementação de PositionRepository sobre PostgreSQL (pool ou tx).
// Reserve e Occupy são UPDATEs condicionais de ida única: a condição de
// disponibilidade fica na cláusula WHERE, nunca em uma leitura separada.
type PositionRepo struct {
	q Querier
}

// NewPositionRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPositionRepository(q Querier) *PositionRepo {
	return &PositionRepo{q: q}
}

// GetByID obtém uma posição por ID.
func (r *PositionRepo) GetByID(ctx context.Context, id string) (*entity.StoragePosition, error) {
	query := `
		SELECT id, warehouse_id, code, active, occupied, reserved_until, created_at, updated_at
		FROM storage_positions WHERE id = $1`
	var p entity.StoragePosition
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.WarehouseID, &p.Code, &p.Active, &p.Occupied, &p.ReservedUntil, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get position: %w", err)
	}
	return &p, nil
}

// FindAvailable lista as posições disponíveis do armazém ordenadas por código.
// Reservas vencidas contam como livres direto no predicado.
func (r *PositionRepo) FindAvailable(ctx context.Context, warehouseID string, now time.Time) ([]*entity.StoragePosition, error) {
	query := `
		SELECT id, warehouse_id, code, active, occupied, reserved_until, created_at, updated_at
		FROM storage_positions
		WHERE warehouse_id = $1 AND active AND NOT occupied
		  AND (reserved_until IS NULL OR reserved_until < $2)
		ORDER BY code`
	rows, err := r.q.Query(ctx, query, warehouseID, now)
	if err != nil {
		return nil, fmt.Errorf("find available positions: %w", err)
	}
	defer rows.Close()
	var list []*entity.StoragePosition
	for rows.Next() {
		var p entity.StoragePosition
		if err := rows.Scan(&p.ID, &p.WarehouseID, &p.Code, &p.Active, &p.Occupied, &p.ReservedUntil, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Reserve aplica o hold somente se a posição estiver disponível agora
// (UPDATE condicional; devolve false quando outro operador chegou antes).
func (r *PositionRepo) Reserve(ctx context.Context, positionID string, until, now time.Time) (bool, error) {
	query := `
		UPDATE storage_positions
		SET reserved_until = $2, updated_at = $3
		WHERE id = $1 AND active AND NOT occupied
		  AND (reserved_until IS NULL OR reserved_until < $3)`
	cmd, err := r.q.Exec(ctx, query, positionID, until, now)
	if err != nil {
		return false, fmt.Errorf("reserve position: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// Occupy marca a posição ocupada somente se disponível ou se o hold vigente
// pertencer ao próprio pallet (a confirmação da reserva não pode conflitar consigo mesma).
func (r *PositionRepo) Occupy(ctx context.Context, positionID, palletID string, now time.Time) (bool, error) {
	query := `
		UPDATE storage_positions p
		SET occupied = true, reserved_until = NULL, updated_at = $3
		WHERE p.id = $1 AND p.active AND NOT p.occupied
		  AND (p.reserved_until IS NULL OR p.reserved_until < $3
		       OR EXISTS (
		           SELECT 1 FROM pallet_allocations a
		           WHERE a.position_id = p.id AND a.pallet_id = $2 AND a.status = 'reserved'))`
	cmd, err := r.q.Exec(ctx, query, positionID, palletID, now)
	if err != nil {
		return false, fmt.Errorf("occupy position: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// Free libera ocupação e hold da posição.
func (r *PositionRepo) Free(ctx context.Context, positionID string) error {
	query := `
		UPDATE storage_positions
		SET occupied = false, reserved_until = NULL, updated_at = now()
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, positionID); err != nil {
		return fmt.Errorf("free position: %w", err)
	}
	return nil
}

// ReleaseExpired limpa holds vencidos do armazém (varredura oportunista).
func (r *PositionRepo) ReleaseExpired(ctx context.Context, warehouseID string, now time.Time) error {
	query := `
		UPDATE storage_positions
		SET reserved_until = NULL, updated_at = $2
		WHERE warehouse_id = $1 AND NOT occupied
		  AND reserved_until IS NOT NULL AND reserved_until < $2`
	if _, err := r.q.Exec(ctx, query, warehouseID, now); err != nil {
		return fmt.Errorf("release expired holds: %w", err)
	}
	return nil
}
