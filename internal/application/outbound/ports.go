package outbound

import (
	"context"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD com os repositórios
// de saldo e razão atados a essa transação. A releitura bloqueante do saldo e a
// baixa acontecem na mesma transação (guarda contra leitura obsoleta).
type TxRunner interface {
	RunOutbound(ctx context.Context, fn func(
		lotRepo repository.LotBalanceRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
