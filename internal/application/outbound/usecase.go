package outbound

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/dto"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/ledger"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

// FefoUseCase seleciona lotes para baixa de expedição na ordem
// primeiro-que-vence-sai-primeiro e executa a baixa contra o lote escolhido.
type FefoUseCase struct {
	txRunner TxRunner
	lotRepo  repository.LotBalanceRepository
	writer   *ledger.Writer
	clock    func() time.Time
}

// NewFefoUseCase constrói o caso de uso. clock nil usa time.Now.
func NewFefoUseCase(
	txRunner TxRunner,
	lotRepo repository.LotBalanceRepository,
	writer *ledger.Writer,
	clock func() time.Time,
) *FefoUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &FefoUseCase{txRunner: txRunner, lotRepo: lotRepo, writer: writer, clock: clock}
}

// SelectLots lista os lotes candidatos do produto no armazém: apenas saldo > 0,
// validade ascendente, lotes sem validade depois de todos os datados.
func (uc *FefoUseCase) SelectLots(ctx context.Context, productID, warehouseID string) ([]dto.LotCandidateResponse, error) {
	if productID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clock()

	lots, err := uc.lotRepo.ListAvailable(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotCandidateResponse, 0, len(lots))
	for _, l := range lots {
		candidate := dto.LotCandidateResponse{
			Lot:          l.Lot,
			RemainingQty: l.Remaining,
			ExpiryDate:   l.ExpiryDate,
		}
		if l.ExpiryDate != nil {
			days := int(l.ExpiryDate.Sub(now).Hours() / 24)
			candidate.DaysToExpire = &days
		}
		out = append(out, candidate)
	}
	return out, nil
}

// Deplete efetua a baixa contra o lote escolhido. O saldo é relido com bloqueio
// de linha dentro da transação antes de validar a quantidade: a lista que o
// operador viu pode estar obsoleta. Excedendo o saldo, devolve o valor real
// para que o pedido de saída seja ajustado.
func (uc *FefoUseCase) Deplete(ctx context.Context, in dto.DepleteRequest, userID string) (*dto.DepleteResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.Lot == "" || in.ReferenceID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clock()

	var remaining decimal.Decimal
	err := uc.txRunner.RunOutbound(ctx, func(
		lotRepo repository.LotBalanceRepository,
		movRepo repository.StockMovementRepository,
	) error {
		bal, err := lotRepo.GetForUpdate(ctx, in.ProductID, in.WarehouseID, in.Lot)
		if err != nil {
			return err
		}
		if bal == nil {
			return domain.ErrNotFound
		}
		if bal.Remaining.LessThan(in.Quantity) {
			return &domain.InsufficientStockError{Lot: in.Lot, Remaining: bal.Remaining}
		}

		mov := &entity.StockMovement{
			ProductID:     in.ProductID,
			WarehouseID:   in.WarehouseID,
			Kind:          entity.MovementKindOut,
			Quantity:      in.Quantity,
			Lot:           in.Lot,
			ReferenceID:   in.ReferenceID,
			ReferenceType: entity.ReferenceOutboundShipment,
			OccurredAt:    now,
			CreatedBy:     userID,
		}
		inserted, err := uc.writer.PostOutbound(ctx, movRepo, lotRepo, mov)
		if err != nil {
			return err
		}
		// Retry da mesma referência: o lançamento já existia e o saldo não muda de novo.
		remaining = bal.Remaining
		if inserted {
			remaining = remaining.Sub(in.Quantity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.DepleteResponse{Lot: in.Lot, RemainingQty: remaining}, nil
}
