package allocation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/dto"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/ledger"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

// DefaultReservationTTL janela padrão do hold de reserva automática.
const DefaultReservationTTL = 10 * time.Minute

// Config parametriza o motor de alocação. O TTL vem da configuração da aplicação
// (testes usam janelas curtas); Clock é injetável para testes de expiração.
type Config struct {
	ReservationTTL time.Duration
	Clock          func() time.Time
}

// Engine é a máquina de estados do vínculo pallet↔posição: reserva automática,
// confirmação (manual ou coletor), remanejamento e remoção. Possui a invariante
// de ocupação: nenhuma posição com duas alocações ativas, nenhum pallet com duas.
// Conflitos de concorrência são devolvidos ao chamador, nunca re-tentados aqui:
// um retry silencioso poderia escolher uma posição diferente daquela em que o
// operador está fisicamente parado.
type Engine struct {
	txRunner       TxRunner
	positionRepo   repository.PositionRepository
	allocationRepo repository.AllocationRepository
	palletRepo     repository.PalletRepository
	writer         *ledger.Writer
	reservationTTL time.Duration
	clock          func() time.Time
}

// NewEngine constrói o motor de alocação.
func NewEngine(
	txRunner TxRunner,
	positionRepo repository.PositionRepository,
	allocationRepo repository.AllocationRepository,
	palletRepo repository.PalletRepository,
	writer *ledger.Writer,
	cfg Config,
) *Engine {
	ttl := cfg.ReservationTTL
	if ttl <= 0 {
		ttl = DefaultReservationTTL
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		txRunner:       txRunner,
		positionRepo:   positionRepo,
		allocationRepo: allocationRepo,
		palletRepo:     palletRepo,
		writer:         writer,
		reservationTTL: ttl,
		clock:          clock,
	}
}

// AutoAllocate reserva a posição disponível de menor código no armazém para o
// pallet, com hold até agora+TTL. A reserva não gera lançamento de estoque.
// Cada candidata é tomada por escrita condicional: duas chamadas concorrentes
// nunca reservam a mesma posição.
func (e *Engine) AutoAllocate(ctx context.Context, palletID, warehouseID, userID string) (*dto.AutoAllocateResponse, error) {
	now := e.clock()

	pallet, err := e.palletRepo.GetByID(ctx, palletID)
	if err != nil {
		return nil, err
	}
	if pallet == nil {
		return nil, domain.ErrNotFound
	}
	if err := e.clearStaleReservation(ctx, palletID, now); err != nil {
		return nil, err
	}

	// Varredura oportunista de holds vencidos; a disponibilidade não depende dela.
	if err := e.positionRepo.ReleaseExpired(ctx, warehouseID, now); err != nil {
		return nil, err
	}
	candidates, err := e.positionRepo.FindAvailable(ctx, warehouseID, now)
	if err != nil {
		return nil, err
	}

	until := now.Add(e.reservationTTL)
	for _, pos := range candidates {
		applied, err := e.positionRepo.Reserve(ctx, pos.ID, until, now)
		if err != nil {
			return nil, err
		}
		if !applied {
			// Outro operador levou esta posição entre a listagem e a reserva.
			continue
		}
		alloc := &entity.Allocation{
			ID:          uuid.New().String(),
			PalletID:    palletID,
			PositionID:  pos.ID,
			Status:      entity.AllocationStatusReserved,
			AllocatedAt: now,
			AllocatedBy: userID,
		}
		if err := e.allocationRepo.Create(ctx, alloc); err != nil {
			// Pallet já reservado/alocado em paralelo: devolve o hold e propaga o conflito.
			_ = e.positionRepo.Free(ctx, pos.ID)
			return nil, err
		}
		return &dto.AutoAllocateResponse{
			PositionID:    pos.ID,
			PositionCode:  pos.Code,
			ReservedUntil: until,
		}, nil
	}
	return nil, domain.ErrNoPositionFree
}

// clearStaleReservation encerra uma alocação reserved cujo hold já venceu,
// liberando o pallet para nova reserva sem ação do operador (o vencimento do
// TTL é o único sinal de cancelamento). Alocações ativas vigentes conflitam.
func (e *Engine) clearStaleReservation(ctx context.Context, palletID string, now time.Time) error {
	existing, err := e.allocationRepo.GetActiveByPallet(ctx, palletID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	if existing.Status == entity.AllocationStatusAllocated {
		return domain.ErrConflict
	}
	pos, err := e.positionRepo.GetByID(ctx, existing.PositionID)
	if err != nil {
		return err
	}
	if pos != nil && !pos.IsAvailable(now) {
		return domain.ErrConflict
	}
	existing.Status = entity.AllocationStatusRemoved
	existing.UpdatedAt = now
	return e.allocationRepo.Update(ctx, existing)
}

// Confirm efetiva a alocação (reserved|pendente → allocated) e lança as entradas
// de estoque dos itens não avariados do pallet, tudo em uma única transação:
// se o razão falhar, a ocupação e a alocação são desfeitas juntas.
//
// No método scanner, os códigos lidos devem bater exatamente com a etiqueta do
// pallet e o código da posição; divergência não altera estado algum.
// Reconfirmar o mesmo par (pallet, posição) é sucesso idempotente.
func (e *Engine) Confirm(ctx context.Context, in dto.ConfirmAllocationRequest, userID string) (*dto.AllocationResponse, error) {
	if in.PalletID == "" || in.PositionID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Method != entity.ConfirmMethodManual && in.Method != entity.ConfirmMethodScanner {
		return nil, domain.ErrInvalidInput
	}
	now := e.clock()

	pallet, err := e.palletRepo.GetByID(ctx, in.PalletID)
	if err != nil {
		return nil, err
	}
	if pallet == nil {
		return nil, domain.ErrNotFound
	}
	position, err := e.positionRepo.GetByID(ctx, in.PositionID)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, domain.ErrNotFound
	}

	if in.Method == entity.ConfirmMethodScanner {
		if in.ScannedPalletCode != pallet.Description {
			return nil, &domain.ScannerMismatchError{Field: "pallet", Expected: pallet.Description, Scanned: in.ScannedPalletCode}
		}
		if in.ScannedPositionCode != position.Code {
			return nil, &domain.ScannerMismatchError{Field: "position", Expected: position.Code, Scanned: in.ScannedPositionCode}
		}
	}

	current, err := e.allocationRepo.GetActiveByPallet(ctx, in.PalletID)
	if err != nil {
		return nil, err
	}
	if current != nil && current.Status == entity.AllocationStatusAllocated {
		if current.PositionID != in.PositionID {
			return nil, domain.ErrConflict
		}
		// Retry de confirmação: reexecuta apenas o razão (idempotente) e devolve o estado atual.
		err := e.txRunner.Run(ctx, func(
			_ repository.PositionRepository,
			_ repository.AllocationRepository,
			movRepo repository.StockMovementRepository,
			lotRepo repository.LotBalanceRepository,
		) error {
			_, err := e.writer.PostPalletEntries(ctx, movRepo, lotRepo, pallet, position.WarehouseID, userID, now)
			return err
		})
		if err != nil {
			return nil, err
		}
		return allocationResponse(current), nil
	}

	var result *entity.Allocation
	err = e.txRunner.Run(ctx, func(
		posRepo repository.PositionRepository,
		allocRepo repository.AllocationRepository,
		movRepo repository.StockMovementRepository,
		lotRepo repository.LotBalanceRepository,
	) error {
		applied, err := posRepo.Occupy(ctx, in.PositionID, in.PalletID, now)
		if err != nil {
			return err
		}
		if !applied {
			return domain.ErrConflict
		}

		alloc := current
		if alloc == nil {
			alloc = &entity.Allocation{
				ID:       uuid.New().String(),
				PalletID: in.PalletID,
			}
		} else if alloc.PositionID != in.PositionID {
			// Confirmação em posição diferente da reservada: devolve o hold antigo.
			if err := posRepo.Free(ctx, alloc.PositionID); err != nil {
				return err
			}
		}
		alloc.PositionID = in.PositionID
		alloc.Status = entity.AllocationStatusAllocated
		alloc.AllocatedAt = now
		alloc.AllocatedBy = userID
		alloc.UpdatedAt = now
		if current == nil {
			if err := allocRepo.Create(ctx, alloc); err != nil {
				return err
			}
		} else {
			if err := allocRepo.Update(ctx, alloc); err != nil {
				return err
			}
		}

		if _, err := e.writer.PostPalletEntries(ctx, movRepo, lotRepo, pallet, position.WarehouseID, userID, now); err != nil {
			return err
		}
		result = alloc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return allocationResponse(result), nil
}

// Reallocate remaneja um pallet alocado para outra posição. A sequência toca duas
// linhas independentes (origem e destino) e pode cruzar fronteiras de serviço,
// então é modelada como saga com compensação explícita em vez de transação única:
// libera origem → ocupa destino → atualiza alocação; falha em qualquer passo
// reocupa a origem, de modo que o pallet nunca fica sem posição.
func (e *Engine) Reallocate(ctx context.Context, palletID, destinationID, notes, userID string) (*dto.AllocationResponse, error) {
	if palletID == "" || destinationID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := e.clock()

	alloc, err := e.allocationRepo.GetActiveByPallet(ctx, palletID)
	if err != nil {
		return nil, err
	}
	if alloc == nil {
		return nil, domain.ErrNotFound
	}
	if alloc.Status != entity.AllocationStatusAllocated {
		return nil, domain.ErrConflict
	}
	if alloc.PositionID == destinationID {
		return nil, domain.ErrInvalidInput
	}

	dest, err := e.positionRepo.GetByID(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	if dest == nil {
		return nil, domain.ErrNotFound
	}
	if !dest.IsAvailable(now) {
		return nil, domain.ErrConflict
	}

	originID := alloc.PositionID
	if err := e.positionRepo.Free(ctx, originID); err != nil {
		return nil, err
	}
	applied, err := e.positionRepo.Occupy(ctx, destinationID, palletID, now)
	if err == nil && !applied {
		err = domain.ErrConflict
	}
	if err != nil {
		// Destino tomado entre a validação e a ocupação: reocupa a origem.
		if compErr := e.reoccupy(ctx, originID, palletID, now); compErr != nil {
			return nil, fmt.Errorf("ocupar destino: %w (compensação falhou: %v)", err, compErr)
		}
		return nil, err
	}

	alloc.PositionID = destinationID
	if notes != "" {
		alloc.Notes = notes
	}
	alloc.AllocatedAt = now
	alloc.AllocatedBy = userID
	alloc.UpdatedAt = now
	if err := e.allocationRepo.Update(ctx, alloc); err != nil {
		_ = e.positionRepo.Free(ctx, destinationID)
		if compErr := e.reoccupy(ctx, originID, palletID, now); compErr != nil {
			return nil, fmt.Errorf("atualizar alocação: %w (compensação falhou: %v)", err, compErr)
		}
		return nil, err
	}
	return allocationResponse(alloc), nil
}

func (e *Engine) reoccupy(ctx context.Context, positionID, palletID string, now time.Time) error {
	applied, err := e.positionRepo.Occupy(ctx, positionID, palletID, now)
	if err != nil {
		return err
	}
	if !applied {
		return domain.ErrConflict
	}
	return nil
}

// Remove encerra a alocação (allocated → removed) e libera a posição.
// Os lançamentos de estoque anteriores são fato histórico e não são revertidos.
func (e *Engine) Remove(ctx context.Context, palletID, userID string) error {
	now := e.clock()

	alloc, err := e.allocationRepo.GetActiveByPallet(ctx, palletID)
	if err != nil {
		return err
	}
	if alloc == nil {
		return domain.ErrNotFound
	}

	positionID := alloc.PositionID
	if err := e.positionRepo.Free(ctx, positionID); err != nil {
		return err
	}
	alloc.Status = entity.AllocationStatusRemoved
	alloc.AllocatedBy = userID
	alloc.UpdatedAt = now
	if err := e.allocationRepo.Update(ctx, alloc); err != nil {
		if compErr := e.reoccupy(ctx, positionID, palletID, now); compErr != nil {
			return fmt.Errorf("encerrar alocação: %w (compensação falhou: %v)", err, compErr)
		}
		return err
	}
	return nil
}

// ListAvailablePositions consulta as posições livres do armazém, ordenadas por código.
// É a consulta que o operador refaz após receber um conflito.
func (e *Engine) ListAvailablePositions(ctx context.Context, warehouseID string) ([]dto.PositionResponse, error) {
	now := e.clock()
	positions, err := e.positionRepo.FindAvailable(ctx, warehouseID, now)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PositionResponse, 0, len(positions))
	for _, p := range positions {
		out = append(out, dto.PositionResponse{
			ID:            p.ID,
			Code:          p.Code,
			Occupied:      p.Occupied,
			ReservedUntil: p.ReservedUntil,
		})
	}
	return out, nil
}

func allocationResponse(a *entity.Allocation) *dto.AllocationResponse {
	return &dto.AllocationResponse{
		ID:          a.ID,
		PalletID:    a.PalletID,
		PositionID:  a.PositionID,
		Status:      a.Status,
		AllocatedAt: a.AllocatedAt,
		AllocatedBy: a.AllocatedBy,
		Notes:       a.Notes,
	}
}
