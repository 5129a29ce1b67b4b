package allocation_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/allocation"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/dto"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/ledger"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakePositionRepo struct {
	positions map[string]*entity.StoragePosition
	allocs    *fakeAllocationRepo
	// denyReserve simula outro operador tomando a posição entre a listagem e a reserva.
	denyReserve map[string]bool
	// denyOccupy simula o destino tomado entre a validação e a ocupação.
	denyOccupy map[string]bool
}

func (r *fakePositionRepo) GetByID(_ context.Context, id string) (*entity.StoragePosition, error) {
	if p, ok := r.positions[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakePositionRepo) FindAvailable(_ context.Context, warehouseID string, now time.Time) ([]*entity.StoragePosition, error) {
	var out []*entity.StoragePosition
	for _, p := range r.positions {
		if p.WarehouseID == warehouseID && p.IsAvailable(now) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *fakePositionRepo) Reserve(_ context.Context, positionID string, until, now time.Time) (bool, error) {
	p, ok := r.positions[positionID]
	if !ok || r.denyReserve[positionID] || !p.IsAvailable(now) {
		return false, nil
	}
	u := until
	p.ReservedUntil = &u
	return true, nil
}

func (r *fakePositionRepo) Occupy(_ context.Context, positionID, palletID string, now time.Time) (bool, error) {
	p, ok := r.positions[positionID]
	if !ok || r.denyOccupy[positionID] || !p.Active || p.Occupied {
		return false, nil
	}
	if !p.IsAvailable(now) && !r.allocs.hasReserved(palletID, positionID) {
		return false, nil
	}
	p.Occupied = true
	p.ReservedUntil = nil
	return true, nil
}

func (r *fakePositionRepo) Free(_ context.Context, positionID string) error {
	if p, ok := r.positions[positionID]; ok {
		p.Occupied = false
		p.ReservedUntil = nil
	}
	return nil
}

func (r *fakePositionRepo) ReleaseExpired(_ context.Context, warehouseID string, now time.Time) error {
	for _, p := range r.positions {
		if p.WarehouseID == warehouseID && !p.Occupied && p.ReservedUntil != nil && p.ReservedUntil.Before(now) {
			p.ReservedUntil = nil
		}
	}
	return nil
}

type fakeAllocationRepo struct {
	allocs     map[string]*entity.Allocation
	failUpdate bool
}

func (r *fakeAllocationRepo) hasReserved(palletID, positionID string) bool {
	for _, a := range r.allocs {
		if a.PalletID == palletID && a.PositionID == positionID && a.Status == entity.AllocationStatusReserved {
			return true
		}
	}
	return false
}

func (r *fakeAllocationRepo) Create(_ context.Context, alloc *entity.Allocation) error {
	for _, a := range r.allocs {
		if a.IsActive() && (a.PalletID == alloc.PalletID || a.PositionID == alloc.PositionID) {
			return domain.ErrConflict
		}
	}
	cp := *alloc
	r.allocs[alloc.ID] = &cp
	return nil
}

func (r *fakeAllocationRepo) GetActiveByPallet(_ context.Context, palletID string) (*entity.Allocation, error) {
	for _, a := range r.allocs {
		if a.PalletID == palletID && a.IsActive() {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAllocationRepo) Update(_ context.Context, alloc *entity.Allocation) error {
	if r.failUpdate {
		return assert.AnError
	}
	if _, ok := r.allocs[alloc.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *alloc
	r.allocs[alloc.ID] = &cp
	return nil
}

type fakePalletRepo struct {
	pallets map[string]*entity.Pallet
}

func (r *fakePalletRepo) GetByID(_ context.Context, id string) (*entity.Pallet, error) {
	if p, ok := r.pallets[id]; ok {
		return p, nil
	}
	return nil, nil
}

func (r *fakePalletRepo) ListByReceivingDocument(_ context.Context, documentID string) ([]*entity.Pallet, error) {
	var out []*entity.Pallet
	for _, p := range r.pallets {
		if p.ReceivingDocumentID == documentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePalletRepo) Create(_ context.Context, pallet *entity.Pallet) error {
	r.pallets[pallet.ID] = pallet
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

// fakeTxRunner executa a função diretamente com os mesmos repositórios.
type fakeTxRunner struct {
	posRepo   repository.PositionRepository
	allocRepo repository.AllocationRepository
	movRepo   repository.StockMovementRepository
	lotRepo   repository.LotBalanceRepository
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	repository.PositionRepository,
	repository.AllocationRepository,
	repository.StockMovementRepository,
	repository.LotBalanceRepository,
) error) error {
	return fn(r.posRepo, r.allocRepo, r.movRepo, r.lotRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cenário base
// ──────────────────────────────────────────────────────────────────────────────

const (
	testWarehouseID = "wh-1"
	testUserID      = "user-1"
	testTTL         = 10 * time.Minute
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type engineFixture struct {
	engine    *allocation.Engine
	positions *fakePositionRepo
	allocs    *fakeAllocationRepo
	pallets   *fakePalletRepo
	movements *fakeMovementRepo
	lots      *fakeLotRepo
	now       *time.Time
}

// newFixture monta o motor com três posições livres (A-001, A-002, A-003) e um
// pallet de três itens, um deles avariado.
func newFixture(t *testing.T) *engineFixture {
	t.Helper()

	now := testNow
	allocs := &fakeAllocationRepo{allocs: map[string]*entity.Allocation{}}
	positions := &fakePositionRepo{
		positions:   map[string]*entity.StoragePosition{},
		allocs:      allocs,
		denyReserve: map[string]bool{},
		denyOccupy:  map[string]bool{},
	}
	for _, code := range []string{"A-002", "A-001", "A-003"} {
		positions.positions["pos-"+code] = &entity.StoragePosition{
			ID:          "pos-" + code,
			WarehouseID: testWarehouseID,
			Code:        code,
			Active:      true,
		}
	}
	pallets := &fakePalletRepo{pallets: map[string]*entity.Pallet{
		"pal-1": {
			ID:                  "pal-1",
			ReceivingDocumentID: "doc-1",
			SequenceNumber:      1,
			Description:         "PAL-0001",
			Items: []entity.PalletItem{
				{ID: "it-1", ProductID: "prod-a", Lot: "L1", Quantity: decimal.NewFromInt(10), UnitValue: decimal.NewFromInt(5)},
				{ID: "it-2", ProductID: "prod-b", Lot: "L2", Quantity: decimal.NewFromInt(4)},
				{ID: "it-3", ProductID: "prod-c", Lot: "L3", Quantity: decimal.NewFromInt(2), IsDamaged: true},
			},
		},
	}}
	movements := &fakeMovementRepo{movements: map[movementKey]*entity.StockMovement{}}
	lots := &fakeLotRepo{balances: map[balanceKey]*entity.LotBalance{}}

	fx := &engineFixture{
		positions: positions,
		allocs:    allocs,
		pallets:   pallets,
		movements: movements,
		lots:      lots,
		now:       &now,
	}
	fx.engine = allocation.NewEngine(
		&fakeTxRunner{posRepo: positions, allocRepo: allocs, movRepo: movements, lotRepo: lots},
		positions, allocs, pallets, ledger.NewWriter(),
		allocation.Config{
			ReservationTTL: testTTL,
			Clock:          func() time.Time { return *fx.now },
		},
	)
	return fx
}

func (fx *engineFixture) advance(d time.Duration) {
	*fx.now = fx.now.Add(d)
}

// ──────────────────────────────────────────────────────────────────────────────
// AutoAllocate
// ──────────────────────────────────────────────────────────────────────────────

func TestAutoAllocate_ReservaPosicaoDeMenorCodigo(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.engine.AutoAllocate(context.Background(), "pal-1", testWarehouseID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, "A-001", out.PositionCode, "a posição de menor código deve ser a escolhida")
	assert.Equal(t, testNow.Add(testTTL), out.ReservedUntil, "o hold deve valer agora+TTL")

	pos := fx.positions.positions[out.PositionID]
	require.NotNil(t, pos.ReservedUntil)
	assert.False(t, pos.Occupied, "reserva não ocupa a posição")

	alloc, err := fx.allocs.GetActiveByPallet(context.Background(), "pal-1")
	require.NoError(t, err)
	require.NotNil(t, alloc)
	assert.Equal(t, entity.AllocationStatusReserved, alloc.Status)

	assert.Empty(t, fx.movements.movements, "reserva não gera lançamento de estoque")
}

func TestAutoAllocate_PalletInexistente(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.engine.AutoAllocate(context.Background(), "pal-x", testWarehouseID, testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAutoAllocate_SemPosicaoLivre(t *testing.T) {
	fx := newFixture(t)
	for _, p := range fx.positions.positions {
		p.Occupied = true
	}

	_, err := fx.engine.AutoAllocate(context.Background(), "pal-1", testWarehouseID, testUserID)
	assert.ErrorIs(t, err, domain.ErrNoPositionFree)
}

func TestAutoAllocate_PalletComReservaVigenteConflita(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.engine.AutoAllocate(context.Background(), "pal-1", testWarehouseID, testUserID)
	require.NoError(t, err)

	_, err = fx.engine.AutoAllocate(context.Background(), "pal-1", testWarehouseID, testUserID)
	assert.ErrorIs(t, err, domain.ErrConflict, "pallet com reserva viva não pode reservar de novo")
}

// Uma reserva abandonada se resolve sozinha pelo vencimento do TTL: nova chamada
// de AutoAllocate após a janela encerra a alocação antiga e reserva de novo.
func TestAutoAllocate_ReservaExpiradaEhSubstituida(t *testing.T) {
	fx := newFixture(t)

	first, err := fx.engine.AutoAllocate(context.Background(), "pal-1", testWarehouseID, testUserID)
	require.NoError(t, err)

	fx.advance(testTTL + time.Minute)

	second, err := fx.engine.AutoAllocate(context.Background(), "pal-1", testWarehouseID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, first.PositionID, second.PositionID,
		"a posição liberada pelo vencimento volta a ser a de menor código")

	active, err := fx.allocs.GetActiveByPallet(context.Background(), "pal-1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, entity.AllocationStatusReserved, active.Status)

	removed := 0
	for _, a := range fx.allocs.allocs {
		if a.Status == entity.AllocationStatusRemoved {
			removed++
		}
	}
	assert.Equal(t, 1, removed, "a reserva vencida deve ter sido encerrada")
}

func TestAutoAllocate_CandidataTomadaPassaParaProxima(t *testing.T) {
	fx := newFixture(t)
	fx.positions.denyReserve["pos-A-001"] = true

	out, err := fx.engine.AutoAllocate(context.Background(), "pal-1", testWarehouseID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, "A-002", out.PositionCode,
		"com a primeira candidata tomada, a próxima em ordem de código é reservada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirm
// ──────────────────────────────────────────────────────────────────────────────

func confirmRequest(positionID, method string) dto.ConfirmAllocationRequest {
	return dto.ConfirmAllocationRequest{
		PalletID:   "pal-1",
		PositionID: positionID,
		Method:     method,
	}
}

func TestConfirm_ManualOcupaELancaEstoque(t *testing.T) {
	fx := newFixture(t)

	reserved, err := fx.engine.AutoAllocate(context.Background(), "pal-1", testWarehouseID, testUserID)
	require.NoError(t, err)

	out, err := fx.engine.Confirm(context.Background(), confirmRequest(reserved.PositionID, entity.ConfirmMethodManual), testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.AllocationStatusAllocated, out.Status)
	assert.Equal(t, reserved.PositionID, out.PositionID)

	pos := fx.positions.positions[reserved.PositionID]
	assert.True(t, pos.Occupied)
	assert.Nil(t, pos.ReservedUntil, "a ocupação consome o hold")

	assert.Len(t, fx.movements.movements, 2,
		"três itens, um avariado: apenas dois lançamentos de entrada")
	for _, m := range fx.movements.movements {
		assert.Equal(t, entity.MovementKindIn, m.Kind)
		assert.Equal(t, "pal-1", m.ReferenceID)
		assert.Equal(t, entity.ReferencePalletAllocation, m.ReferenceType)
		assert.NotEqual(t, "prod-c", m.ProductID, "item avariado não entra no razão")
	}

	balA, err := fx.lots.GetForUpdate(context.Background(), "prod-a", testWarehouseID, "L1")
	require.NoError(t, err)
	require.NotNil(t, balA)
	assert.True(t, decimal.NewFromInt(10).Equal(balA.Remaining))
}

func TestConfirm_RepetidaEhIdempotente(t *testing.T) {
	fx := newFixture(t)

	reserved, err := fx.engine.AutoAllocate(context.Background(), "pal-1", testWarehouseID, testUserID)
	require.NoError(t, err)
	first, err := fx.engine.Confirm(context.Background(), confirmRequest(reserved.PositionID, entity.ConfirmMethodManual), testUserID)
	require.NoError(t, err)

	second, err := fx.engine.Confirm(context.Background(), confirmRequest(reserved.PositionID, entity.ConfirmMethodManual), testUserID)
	require.NoError(t, err, "reconfirmar o mesmo par (pallet, posição) é sucesso")
	assert.Equal(t, first.ID, second.ID)

	assert.Len(t, fx.movements.movements, 2, "o retry não duplica lançamentos")
	balA, _ := fx.lots.GetForUpdate(context.Background(), "prod-a", testWarehouseID, "L1")
	assert.True(t, decimal.NewFromInt(10).Equal(balA.Remaining), "o retry não soma saldo duas vezes")
}

func TestConfirm_ScannerSucesso(t *testing.T) {
	fx := newFixture(t)

	reserved, err := fx.engine.AutoAllocate(context.Background(), "pal-1", testWarehouseID, testUserID)
	require.NoError(t, err)

	in := confirmRequest(reserved.PositionID, entity.ConfirmMethodScanner)
	in.ScannedPalletCode = "PAL-0001"
	in.ScannedPositionCode = reserved.PositionCode
	out, err := fx.engine.Confirm(context.Background(), in, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.AllocationStatusAllocated, out.Status)
}

func TestConfirm_ScannerCodigoDivergenteNaoAlteraEstado(t *testing.T) {
	fx := newFixture(t)

	reserved, err := fx.engine.AutoAllocate(context.Background(), "pal-1", testWarehouseID, testUserID)
	require.NoError(t, err)

	in := confirmRequest(reserved.PositionID, entity.ConfirmMethodScanner)
	in.ScannedPalletCode = "PAL-0001"
	in.ScannedPositionCode = "B-999"
	_, err = fx.engine.Confirm(context.Background(), in, testUserID)

	var mismatch *domain.ScannerMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "position", mismatch.Field)
	assert.Equal(t, reserved.PositionCode, mismatch.Expected)
	assert.Equal(t, "B-999", mismatch.Scanned)

	pos := fx.positions.positions[reserved.PositionID]
	assert.False(t, pos.Occupied, "divergência de coletor não ocupa a posição")
	active, _ := fx.allocs.GetActiveByPallet(context.Background(), "pal-1")
	assert.Equal(t, entity.AllocationStatusReserved, active.Status, "a reserva permanece intacta")
	assert.Empty(t, fx.movements.movements)
}

func TestConfirm_PosicaoOcupadaPorOutroConflita(t *testing.T) {
	fx := newFixture(t)
	fx.positions.positions["pos-A-001"].Occupied = true

	_, err := fx.engine.Confirm(context.Background(), confirmRequest("pos-A-001", entity.ConfirmMethodManual), testUserID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, fx.movements.movements)
}

func TestConfirm_MetodoInvalido(t *testing.T) {
	fx := newFixture(t)

	in := confirmRequest("pos-A-001", "telepatia")
	_, err := fx.engine.Confirm(context.Background(), in, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reallocate
// ──────────────────────────────────────────────────────────────────────────────

func allocateAt(t *testing.T, fx *engineFixture) *dto.AllocationResponse {
	t.Helper()
	reserved, err := fx.engine.AutoAllocate(context.Background(), "pal-1", testWarehouseID, testUserID)
	require.NoError(t, err)
	out, err := fx.engine.Confirm(context.Background(), confirmRequest(reserved.PositionID, entity.ConfirmMethodManual), testUserID)
	require.NoError(t, err)
	return out
}

func TestReallocate_MovePalletELiberaOrigem(t *testing.T) {
	fx := newFixture(t)
	origin := allocateAt(t, fx)

	out, err := fx.engine.Reallocate(context.Background(), "pal-1", "pos-A-003", "posição com acesso melhor", testUserID)
	require.NoError(t, err)
	assert.Equal(t, "pos-A-003", out.PositionID)
	assert.Equal(t, "posição com acesso melhor", out.Notes)

	assert.False(t, fx.positions.positions[origin.PositionID].Occupied, "a origem deve ficar livre")
	assert.True(t, fx.positions.positions["pos-A-003"].Occupied)
	assert.Len(t, fx.movements.movements, 2, "remanejamento não gera novo lançamento de estoque")
}

func TestReallocate_DestinoTomadoCompensaReocupandoOrigem(t *testing.T) {
	fx := newFixture(t)
	origin := allocateAt(t, fx)
	fx.positions.denyOccupy["pos-A-003"] = true

	_, err := fx.engine.Reallocate(context.Background(), "pal-1", "pos-A-003", "", testUserID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.True(t, fx.positions.positions[origin.PositionID].Occupied,
		"a compensação deve reocupar a origem: o pallet nunca fica sem posição")
	active, _ := fx.allocs.GetActiveByPallet(context.Background(), "pal-1")
	assert.Equal(t, origin.PositionID, active.PositionID)
}

func TestReallocate_FalhaNaAtualizacaoCompensa(t *testing.T) {
	fx := newFixture(t)
	origin := allocateAt(t, fx)
	fx.allocs.failUpdate = true

	_, err := fx.engine.Reallocate(context.Background(), "pal-1", "pos-A-003", "", testUserID)
	require.Error(t, err)

	assert.True(t, fx.positions.positions[origin.PositionID].Occupied)
	assert.False(t, fx.positions.positions["pos-A-003"].Occupied, "o destino volta a ficar livre")
}

func TestReallocate_MesmaPosicao(t *testing.T) {
	fx := newFixture(t)
	origin := allocateAt(t, fx)

	_, err := fx.engine.Reallocate(context.Background(), "pal-1", origin.PositionID, "", testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReallocate_PalletApenasReservadoConflita(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.engine.AutoAllocate(context.Background(), "pal-1", testWarehouseID, testUserID)
	require.NoError(t, err)

	_, err = fx.engine.Reallocate(context.Background(), "pal-1", "pos-A-003", "", testUserID)
	assert.ErrorIs(t, err, domain.ErrConflict, "só pallets efetivamente alocados podem ser remanejados")
}

// ──────────────────────────────────────────────────────────────────────────────
// Remove e consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestRemove_LiberaPosicaoEPreservaRazao(t *testing.T) {
	fx := newFixture(t)
	origin := allocateAt(t, fx)

	err := fx.engine.Remove(context.Background(), "pal-1", testUserID)
	require.NoError(t, err)

	assert.False(t, fx.positions.positions[origin.PositionID].Occupied)
	active, _ := fx.allocs.GetActiveByPallet(context.Background(), "pal-1")
	assert.Nil(t, active, "a alocação não pode continuar ativa após a remoção")
	assert.Len(t, fx.movements.movements, 2, "as entradas lançadas são fato histórico")
}

func TestRemove_SemAlocacaoAtiva(t *testing.T) {
	fx := newFixture(t)

	err := fx.engine.Remove(context.Background(), "pal-1", testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListAvailablePositions_ReservaVigenteNaoAparece(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.engine.AutoAllocate(context.Background(), "pal-1", testWarehouseID, testUserID)
	require.NoError(t, err)

	out, err := fx.engine.ListAvailablePositions(context.Background(), testWarehouseID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "A-002", out[0].Code)
	assert.Equal(t, "A-003", out[1].Code)

	fx.advance(testTTL + time.Minute)
	out, err = fx.engine.ListAvailablePositions(context.Background(), testWarehouseID)
	require.NoError(t, err)
	assert.Len(t, out, 3, "reserva vencida conta como disponível sem varredura prévia")
}
