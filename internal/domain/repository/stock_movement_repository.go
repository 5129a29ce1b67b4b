package repository

import (
	"context"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
)

// StockMovementRepository define o porto do razão de estoque (append-only).
type StockMovementRepository interface {
	// CreateIfAbsent insere o lançamento respeitando a chave de idempotência
	// (reference_id, reference_type, product_id, lot). Devolve false quando o
	// lançamento já existia (retry), sem erro.
	CreateIfAbsent(ctx context.Context, movement *entity.StockMovement) (bool, error)
	ListByReference(ctx context.Context, referenceID, referenceType string) ([]*entity.StockMovement, error)
}
