package repository

import (
	"context"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
)

// LotBalanceRepository define o porto dos saldos materializados por lote.
type LotBalanceRepository interface {
	// ListAvailable lista lotes com saldo > 0 do produto no armazém, ordenados por
	// validade ascendente com lotes sem validade ao final (FEFO).
	ListAvailable(ctx context.Context, productID, warehouseID string) ([]*entity.LotBalance, error)
	// GetForUpdate relê o saldo do lote bloqueando a linha (guarda contra leitura obsoleta).
	GetForUpdate(ctx context.Context, productID, warehouseID, lot string) (*entity.LotBalance, error)
	Upsert(ctx context.Context, balance *entity.LotBalance) error
}
