package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/allocation"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/outbound"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/receiving"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

// Ensure TxRunner implements os portos transacionais dos casos de uso.
var _ allocation.TxRunner = (*TxRunner)(nil)
var _ receiving.TxRunner = (*TxRunner)(nil)
var _ outbound.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação com os repositórios da confirmação de alocação
// (posições, alocações, razão e saldos) e faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	posRepo repository.PositionRepository,
	allocRepo repository.AllocationRepository,
	movRepo repository.StockMovementRepository,
	lotRepo repository.LotBalanceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewPositionRepository(tx),
		NewAllocationRepository(tx),
		NewStockMovementRepository(tx),
		NewLotBalanceRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReceiving inicia uma transação com os repositórios da reconciliação de recebimento.
func (r *TxRunner) RunReceiving(ctx context.Context, fn func(
	docRepo repository.ReceivingDocumentRepository,
	discRepo repository.DiscrepancyRepository,
	movRepo repository.StockMovementRepository,
	lotRepo repository.LotBalanceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewReceivingDocumentRepository(tx),
		NewDiscrepancyRepository(tx),
		NewStockMovementRepository(tx),
		NewLotBalanceRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOutbound inicia uma transação com os repositórios da baixa de expedição.
func (r *TxRunner) RunOutbound(ctx context.Context, fn func(
	lotRepo repository.LotBalanceRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewLotBalanceRepository(tx),
		NewStockMovementRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
