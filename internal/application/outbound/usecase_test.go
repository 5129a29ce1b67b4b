package outbound_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/dto"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/ledger"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/outbound"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type balanceKey struct {
	productID, warehouseID, lot string
}

type fakeLotRepo struct {
	balances map[balanceKey]*entity.LotBalance
}

func (r *fakeLotRepo) ListAvailable(_ context.Context, productID, warehouseID string) ([]*entity.LotBalance, error) {
	var out []*entity.LotBalance
	for _, b := range r.balances {
		if b.ProductID == productID && b.WarehouseID == warehouseID && b.Remaining.GreaterThan(decimal.Zero) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ei, ej := out[i].ExpiryDate, out[j].ExpiryDate
		switch {
		case ei == nil && ej == nil:
			return out[i].Lot < out[j].Lot
		case ei == nil:
			return false
		case ej == nil:
			return true
		case ei.Equal(*ej):
			return out[i].Lot < out[j].Lot
		default:
			return ei.Before(*ej)
		}
	})
	return out, nil
}

func (r *fakeLotRepo) GetForUpdate(_ context.Context, productID, warehouseID, lot string) (*entity.LotBalance, error) {
	if b, ok := r.balances[balanceKey{productID, warehouseID, lot}]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeLotRepo) Upsert(_ context.Context, b *entity.LotBalance) error {
	cp := *b
	r.balances[balanceKey{b.ProductID, b.WarehouseID, b.Lot}] = &cp
	return nil
}

type movementKey struct {
	refID, refType, productID, lot string
}

type fakeMovementRepo struct {
	movements map[movementKey]*entity.StockMovement
}

func (r *fakeMovementRepo) CreateIfAbsent(_ context.Context, m *entity.StockMovement) (bool, error) {
	k := movementKey{m.ReferenceID, m.ReferenceType, m.ProductID, m.Lot}
	if _, ok := r.movements[k]; ok {
		return false, nil
	}
	cp := *m
	r.movements[k] = &cp
	return true, nil
}

func (r *fakeMovementRepo) ListByReference(_ context.Context, referenceID, referenceType string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ReferenceID == referenceID && m.ReferenceType == referenceType {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	lotRepo repository.LotBalanceRepository
	movRepo repository.StockMovementRepository
}

func (r *fakeTxRunner) RunOutbound(ctx context.Context, fn func(
	repository.LotBalanceRepository,
	repository.StockMovementRepository,
) error) error {
	return fn(r.lotRepo, r.movRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cenário base
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID   = "prod-a"
	testWarehouseID = "wh-1"
	testUserID      = "user-1"
)

var testNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func date(daysFromNow int) *time.Time {
	d := testNow.AddDate(0, 0, daysFromNow)
	return &d
}

type fixture struct {
	uc        *outbound.FefoUseCase
	lots      *fakeLotRepo
	movements *fakeMovementRepo
}

// newFixture monta três lotes datados fora de ordem e um sem validade.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	lots := &fakeLotRepo{balances: map[balanceKey]*entity.LotBalance{}}
	seed := []*entity.LotBalance{
		{ProductID: testProductID, WarehouseID: testWarehouseID, Lot: "B", Remaining: decimal.NewFromInt(20), ExpiryDate: date(30)},
		{ProductID: testProductID, WarehouseID: testWarehouseID, Lot: "A", Remaining: decimal.NewFromInt(5), ExpiryDate: date(7)},
		{ProductID: testProductID, WarehouseID: testWarehouseID, Lot: "C", Remaining: decimal.NewFromInt(12), ExpiryDate: date(90)},
		{ProductID: testProductID, WarehouseID: testWarehouseID, Lot: "S/V", Remaining: decimal.NewFromInt(50)},
	}
	for _, b := range seed {
		lots.balances[balanceKey{b.ProductID, b.WarehouseID, b.Lot}] = b
	}
	movements := &fakeMovementRepo{movements: map[movementKey]*entity.StockMovement{}}

	uc := outbound.NewFefoUseCase(
		&fakeTxRunner{lotRepo: lots, movRepo: movements},
		lots, ledger.NewWriter(),
		func() time.Time { return testNow },
	)
	return &fixture{uc: uc, lots: lots, movements: movements}
}

// ──────────────────────────────────────────────────────────────────────────────
// SelectLots
// ──────────────────────────────────────────────────────────────────────────────

func TestSelectLots_OrdemFefoComSemValidadeAoFinal(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.uc.SelectLots(context.Background(), testProductID, testWarehouseID)
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, "A", out[0].Lot, "o lote que vence primeiro sai primeiro")
	assert.Equal(t, "B", out[1].Lot)
	assert.Equal(t, "C", out[2].Lot)
	assert.Equal(t, "S/V", out[3].Lot, "lote sem validade fica depois de todos os datados")

	require.NotNil(t, out[0].DaysToExpire)
	assert.Equal(t, 7, *out[0].DaysToExpire)
	assert.Nil(t, out[3].DaysToExpire, "sem validade não tem contagem de dias")
	assert.Nil(t, out[3].ExpiryDate)
}

func TestSelectLots_SaldoZeradoNaoAparece(t *testing.T) {
	fx := newFixture(t)
	fx.lots.balances[balanceKey{testProductID, testWarehouseID, "A"}].Remaining = decimal.Zero

	out, err := fx.uc.SelectLots(context.Background(), testProductID, testWarehouseID)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "B", out[0].Lot)
}

func TestSelectLots_EntradaInvalida(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.SelectLots(context.Background(), "", testWarehouseID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Deplete
// ──────────────────────────────────────────────────────────────────────────────

func depleteRequest(lot string, qty int64) dto.DepleteRequest {
	return dto.DepleteRequest{
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Lot:         lot,
		Quantity:    decimal.NewFromInt(qty),
		ReferenceID: "ship-1",
	}
}

func TestDeplete_BaixaELancaSaida(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.uc.Deplete(context.Background(), depleteRequest("A", 3), testUserID)
	require.NoError(t, err)
	assert.Equal(t, "A", out.Lot)
	assert.True(t, decimal.NewFromInt(2).Equal(out.RemainingQty))

	bal, _ := fx.lots.GetForUpdate(context.Background(), testProductID, testWarehouseID, "A")
	assert.True(t, decimal.NewFromInt(2).Equal(bal.Remaining))

	require.Len(t, fx.movements.movements, 1)
	for _, m := range fx.movements.movements {
		assert.Equal(t, entity.MovementKindOut, m.Kind)
		assert.Equal(t, entity.ReferenceOutboundShipment, m.ReferenceType)
		assert.Equal(t, "ship-1", m.ReferenceID)
	}
}

// O saldo que o operador viu na listagem pode estar obsoleto: a validação vale
// contra a releitura bloqueante, e o erro carrega o saldo real.
func TestDeplete_SaldoInsuficienteDevolveSaldoReal(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Deplete(context.Background(), depleteRequest("A", 8), testUserID)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "A", insufficient.Lot)
	assert.True(t, decimal.NewFromInt(5).Equal(insufficient.Remaining))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	bal, _ := fx.lots.GetForUpdate(context.Background(), testProductID, testWarehouseID, "A")
	assert.True(t, decimal.NewFromInt(5).Equal(bal.Remaining), "a baixa recusada não altera o saldo")
	assert.Empty(t, fx.movements.movements)
}

func TestDeplete_RetryMesmaReferenciaNaoDuplicaBaixa(t *testing.T) {
	fx := newFixture(t)

	first, err := fx.uc.Deplete(context.Background(), depleteRequest("A", 3), testUserID)
	require.NoError(t, err)
	second, err := fx.uc.Deplete(context.Background(), depleteRequest("A", 3), testUserID)
	require.NoError(t, err)

	assert.True(t, first.RemainingQty.Equal(second.RemainingQty),
		"o retry devolve o mesmo saldo em vez de baixar de novo")
	bal, _ := fx.lots.GetForUpdate(context.Background(), testProductID, testWarehouseID, "A")
	assert.True(t, decimal.NewFromInt(2).Equal(bal.Remaining))
	assert.Len(t, fx.movements.movements, 1)
}

func TestDeplete_LoteInexistente(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Deplete(context.Background(), depleteRequest("X", 1), testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeplete_EntradaInvalida(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Deplete(context.Background(), depleteRequest("A", 0), testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in := depleteRequest("A", 1)
	in.ReferenceID = ""
	_, err = fx.uc.Deplete(context.Background(), in, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
