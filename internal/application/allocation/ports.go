package allocation

import (
	"context"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando repositórios
// atados a essa transação. Garante que ocupação, alocação e lançamentos de estoque
// da confirmação sejam uma unidade lógica (tudo ou nada).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		posRepo repository.PositionRepository,
		allocRepo repository.AllocationRepository,
		movRepo repository.StockMovementRepository,
		lotRepo repository.LotBalanceRepository,
	) error) error
}
