package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

// Writer grava lançamentos no razão de estoque e mantém os saldos por lote.
// Todos os métodos recebem repositórios atados à transação do chamador: lançamento
// e saldo andam juntos ou não andam. A idempotência vem da chave
// (reference_id, reference_type, product_id, lot) — um retry nunca duplica linhas
// nem soma saldo duas vezes (o saldo só é ajustado quando a linha foi de fato inserida).
type Writer struct{}

// NewWriter constrói o escritor do razão.
func NewWriter() *Writer {
	return &Writer{}
}

// PostPalletEntries lança as entradas dos itens não avariados de um pallet confirmado.
// Devolve quantos lançamentos foram efetivamente inseridos (zero em retry puro).
func (w *Writer) PostPalletEntries(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	lotRepo repository.LotBalanceRepository,
	pallet *entity.Pallet,
	warehouseID, userID string,
	now time.Time,
) (int, error) {
	inserted := 0
	for _, item := range pallet.SoundItems() {
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return 0, domain.ErrInvalidInput
		}
		mov := &entity.StockMovement{
			ProductID:     item.ProductID,
			WarehouseID:   warehouseID,
			Kind:          entity.MovementKindIn,
			Quantity:      item.Quantity,
			UnitValue:     item.UnitValue,
			Lot:           item.Lot,
			ExpiryDate:    item.ExpiryDate,
			ReferenceID:   pallet.ID,
			ReferenceType: entity.ReferencePalletAllocation,
			OccurredAt:    now,
			CreatedBy:     userID,
		}
		ok, err := w.post(ctx, movRepo, lotRepo, mov)
		if err != nil {
			return 0, err
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

// PostReceivingEntries lança as entradas de todos os itens de linha de um documento
// de recebimento (caminho direto, franquia sem gestão de armazém).
func (w *Writer) PostReceivingEntries(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	lotRepo repository.LotBalanceRepository,
	doc *entity.ReceivingDocument,
	userID string,
	now time.Time,
) (int, error) {
	inserted := 0
	for _, item := range doc.Items {
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return 0, domain.ErrInvalidInput
		}
		mov := &entity.StockMovement{
			ProductID:     item.ProductID,
			WarehouseID:   doc.WarehouseID,
			Kind:          entity.MovementKindIn,
			Quantity:      item.Quantity,
			UnitValue:     item.UnitValue,
			Lot:           item.Lot,
			ExpiryDate:    item.ExpiryDate,
			ReferenceID:   doc.ID,
			ReferenceType: entity.ReferenceReceivingDocument,
			OccurredAt:    now,
			CreatedBy:     userID,
		}
		ok, err := w.post(ctx, movRepo, lotRepo, mov)
		if err != nil {
			return 0, err
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

// PostOutbound lança uma saída já validada contra o saldo do lote (a validação
// com releitura bloqueante é responsabilidade do caso de uso de expedição).
func (w *Writer) PostOutbound(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	lotRepo repository.LotBalanceRepository,
	mov *entity.StockMovement,
) (bool, error) {
	if mov.Kind != entity.MovementKindOut || !mov.Quantity.GreaterThan(decimal.Zero) {
		return false, domain.ErrInvalidInput
	}
	return w.post(ctx, movRepo, lotRepo, mov)
}

// post insere o lançamento (idempotente) e, apenas se inseriu, ajusta o saldo do lote.
func (w *Writer) post(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	lotRepo repository.LotBalanceRepository,
	mov *entity.StockMovement,
) (bool, error) {
	inserted, err := movRepo.CreateIfAbsent(ctx, mov)
	if err != nil {
		return false, err
	}
	if !inserted {
		return false, nil
	}

	bal, err := lotRepo.GetForUpdate(ctx, mov.ProductID, mov.WarehouseID, mov.Lot)
	if err != nil {
		return false, err
	}
	if bal == nil {
		bal = &entity.LotBalance{
			ProductID:   mov.ProductID,
			WarehouseID: mov.WarehouseID,
			Lot:         mov.Lot,
			Remaining:   decimal.Zero,
			ExpiryDate:  mov.ExpiryDate,
		}
	}
	switch mov.Kind {
	case entity.MovementKindIn:
		bal.Remaining = bal.Remaining.Add(mov.Quantity)
		if bal.ExpiryDate == nil {
			bal.ExpiryDate = mov.ExpiryDate
		}
	case entity.MovementKindOut:
		bal.Remaining = bal.Remaining.Sub(mov.Quantity)
	default:
		return false, domain.ErrInvalidInput
	}
	bal.UpdatedAt = mov.OccurredAt
	if err := lotRepo.Upsert(ctx, bal); err != nil {
		return false, err
	}
	return true, nil
}
