package receiving

import (
	"context"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD com os repositórios
// da reconciliação atados a essa transação. Divergências, mudança de status e
// lançamentos diretos de estoque são confirmados (ou desfeitos) juntos.
type TxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		docRepo repository.ReceivingDocumentRepository,
		discRepo repository.DiscrepancyRepository,
		movRepo repository.StockMovementRepository,
		lotRepo repository.LotBalanceRepository,
	) error) error
}
