package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

var _ repository.LotBalanceRepository = (*LotBalanceRepo)(nil)

// LotBalanceRepo implementação dos saldos por lote sobre PostgreSQL (pool ou tx).
type LotBalanceRepo struct {
	q Querier
}

// NewLotBalanceRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewLotBalanceRepository(q Querier) *LotBalanceRepo {
	return &LotBalanceRepo{q: q}
}

// ListAvailable lista lotes com saldo positivo na ordem FEFO:
// validade ascendente, lotes sem validade ao final (NULLS LAST).
func (r *LotBalanceRepo) ListAvailable(ctx context.Context, productID, warehouseID string) ([]*entity.LotBalance, error) {
	query := `
		SELECT product_id, warehouse_id, lot, remaining, expiry_date, updated_at
		FROM lot_balances
		WHERE product_id = $1 AND warehouse_id = $2 AND remaining > 0
		ORDER BY expiry_date ASC NULLS LAST, lot`
	rows, err := r.q.Query(ctx, query, productID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list lot balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.LotBalance
	for rows.Next() {
		var b entity.LotBalance
		if err := rows.Scan(&b.ProductID, &b.WarehouseID, &b.Lot, &b.Remaining, &b.ExpiryDate, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lot balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// GetForUpdate relê o saldo do lote bloqueando a linha (SELECT FOR UPDATE).
func (r *LotBalanceRepo) GetForUpdate(ctx context.Context, productID, warehouseID, lot string) (*entity.LotBalance, error) {
	query := `
		SELECT product_id, warehouse_id, lot, remaining, expiry_date, updated_at
		FROM lot_balances
		WHERE product_id = $1 AND warehouse_id = $2 AND lot = $3
		FOR UPDATE`
	var b entity.LotBalance
	err := r.q.QueryRow(ctx, query, productID, warehouseID, lot).Scan(
		&b.ProductID, &b.WarehouseID, &b.Lot, &b.Remaining, &b.ExpiryDate, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot balance for update: %w", err)
	}
	return &b, nil
}

// Upsert insere ou atualiza o saldo do lote.
func (r *LotBalanceRepo) Upsert(ctx context.Context, b *entity.LotBalance) error {
	query := `
		INSERT INTO lot_balances (product_id, warehouse_id, lot, remaining, expiry_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, warehouse_id, lot)
		DO UPDATE SET remaining = EXCLUDED.remaining,
		              expiry_date = COALESCE(lot_balances.expiry_date, EXCLUDED.expiry_date),
		              updated_at = now()`
	if _, err := r.q.Exec(ctx, query, b.ProductID, b.WarehouseID, b.Lot, b.Remaining, b.ExpiryDate); err != nil {
		return fmt.Errorf("upsert lot balance: %w", err)
	}
	return nil
}
