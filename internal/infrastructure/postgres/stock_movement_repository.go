package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementação do razão de estoque sobre PostgreSQL (pool ou tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// CreateIfAbsent insere o lançamento respeitando a chave de idempotência
// (reference_id, reference_type, product_id, lot) via ON CONFLICT DO NOTHING.
// Devolve false quando o lançamento já existia.
func (r *StockMovementRepo) CreateIfAbsent(ctx context.Context, m *entity.StockMovement) (bool, error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, warehouse_id, kind, quantity, unit_value, lot, expiry_date, reference_id, reference_type, occurred_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (reference_id, reference_type, product_id, lot) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.WarehouseID, m.Kind, m.Quantity, m.UnitValue,
		m.Lot, m.ExpiryDate, m.ReferenceID, m.ReferenceType, m.OccurredAt, m.CreatedBy,
	)
	if err != nil {
		return false, fmt.Errorf("create stock movement: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// ListByReference lista os lançamentos de uma referência (pallet, documento, expedição).
func (r *StockMovementRepo) ListByReference(ctx context.Context, referenceID, referenceType string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, warehouse_id, kind, quantity, unit_value, lot, expiry_date, reference_id, reference_type, occurred_at, created_by
		FROM stock_movements
		WHERE reference_id = $1 AND reference_type = $2
		ORDER BY occurred_at`
	rows, err := r.q.Query(ctx, query, referenceID, referenceType)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.WarehouseID, &m.Kind, &m.Quantity, &m.UnitValue,
			&m.Lot, &m.ExpiryDate, &m.ReferenceID, &m.ReferenceType, &m.OccurredAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
