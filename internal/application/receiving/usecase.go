package receiving

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/dto"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/ledger"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
	domrec "github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/receiving"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

// ReconcileUseCase conduz a confirmação de um documento de recebimento:
// valida a transição de status, classifica as divergências reportadas na
// taxonomia fixa e decide o caminho de lançamento de estoque pela
// parametrização da franquia. Errar esse ramo duplica ou perde estoque,
// então a decisão é tomada uma única vez, antes da transação.
type ReconcileUseCase struct {
	txRunner     TxRunner
	docRepo      repository.ReceivingDocumentRepository
	discRepo     repository.DiscrepancyRepository
	settingsRepo repository.FranchiseSettingsRepository
	writer       *ledger.Writer
	clock        func() time.Time
}

// NewReconcileUseCase constrói o caso de uso. clock nil usa time.Now.
func NewReconcileUseCase(
	txRunner TxRunner,
	docRepo repository.ReceivingDocumentRepository,
	discRepo repository.DiscrepancyRepository,
	settingsRepo repository.FranchiseSettingsRepository,
	writer *ledger.Writer,
	clock func() time.Time,
) *ReconcileUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &ReconcileUseCase{
		txRunner:     txRunner,
		docRepo:      docRepo,
		discRepo:     discRepo,
		settingsRepo: settingsRepo,
		writer:       writer,
		clock:        clock,
	}
}

// Actor identifica quem confirma: operadores não administrativos só atuam
// sobre documentos da própria franquia.
type Actor struct {
	UserID      string
	FranchiseID string
	Admin       bool
}

// ReconcileConfirmation confirma o documento de recebimento.
//
// Franquia SEM gestão de armazém: lança uma entrada de estoque por item de linha,
// referenciando o documento, na mesma transação da confirmação.
// Franquia COM gestão de armazém: nenhum estoque é lançado aqui; cada pallet do
// documento lança suas entradas ao concluir a confirmação de endereçamento.
// As divergências são persistidas em ambos os caminhos.
func (uc *ReconcileUseCase) ReconcileConfirmation(
	ctx context.Context,
	documentID string,
	in dto.ReconcileConfirmationRequest,
	actor Actor,
) (*dto.ReconcileConfirmationResponse, error) {
	now := uc.clock()

	doc, err := uc.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.Admin && doc.FranchiseID != actor.FranchiseID {
		return nil, domain.ErrForbidden
	}
	if err := domrec.CanConfirm(doc.ApprovalStatus); err != nil {
		return nil, err
	}

	discrepancies, err := uc.buildDiscrepancies(doc, in.Discrepancies, actor.UserID, now)
	if err != nil {
		return nil, err
	}

	settings, err := uc.settingsRepo.GetByFranchise(ctx, doc.FranchiseID)
	if err != nil {
		return nil, err
	}
	wmsEnabled := settings != nil && settings.WarehouseManagementEnabled

	if !wmsEnabled && len(doc.Items) == 0 {
		// O caminho direto lança estoque a partir dos itens: sem itens não há o que confirmar.
		return nil, domain.ErrInvalidInput
	}

	err = uc.txRunner.RunReceiving(ctx, func(
		docRepo repository.ReceivingDocumentRepository,
		discRepo repository.DiscrepancyRepository,
		movRepo repository.StockMovementRepository,
		lotRepo repository.LotBalanceRepository,
	) error {
		for _, d := range discrepancies {
			if err := discRepo.Create(ctx, d); err != nil {
				return err
			}
		}
		if !wmsEnabled {
			if _, err := uc.writer.PostReceivingEntries(ctx, movRepo, lotRepo, doc, actor.UserID, now); err != nil {
				return err
			}
		}
		return docRepo.UpdateStatus(ctx, doc.ID, entity.ReceivingStatusConfirmed, now)
	})
	if err != nil {
		return nil, err
	}

	return &dto.ReconcileConfirmationResponse{
		DiscrepanciesCreated: len(discrepancies),
		StockPosted:          !wmsEnabled,
	}, nil
}

// buildDiscrepancies classifica e valida as divergências reportadas.
func (uc *ReconcileUseCase) buildDiscrepancies(
	doc *entity.ReceivingDocument,
	inputs []dto.DiscrepancyInput,
	userID string,
	now time.Time,
) ([]*entity.Discrepancy, error) {
	out := make([]*entity.Discrepancy, 0, len(inputs))
	for _, in := range inputs {
		if in.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		if in.ExpectedQty.IsNegative() || in.FoundQty.IsNegative() {
			return nil, domain.ErrInvalidInput
		}

		kind := domrec.ClassifyKind(in.Kind)
		priority := in.Priority
		if priority == "" {
			priority = domrec.DefaultPriority(kind)
		}

		notes := in.Notes
		if kind == entity.DiscrepancyKindDamage && in.DamagedQty == nil {
			qty := domrec.DamagedQty(in.ExpectedQty, in.FoundQty)
			note := domrec.DamagedQtyNote(qty)
			if notes == "" {
				notes = note
			} else {
				notes = strings.Join([]string{notes, note}, "; ")
			}
		}

		out = append(out, &entity.Discrepancy{
			ID:                  uuid.New().String(),
			ReceivingDocumentID: doc.ID,
			ProductID:           in.ProductID,
			OriginType:          entity.DiscrepancyOriginReceiving,
			Kind:                kind,
			ExpectedQty:         in.ExpectedQty,
			FoundQty:            in.FoundQty,
			Lot:                 in.Lot,
			Status:              entity.DiscrepancyStatusPending,
			Priority:            priority,
			Notes:               notes,
			CreatedAt:           now,
			CreatedBy:           userID,
		})
	}
	return out, nil
}

// ListDiscrepancies lista as divergências persistidas de um documento,
// para acompanhamento das pendências de alta prioridade.
func (uc *ReconcileUseCase) ListDiscrepancies(ctx context.Context, documentID string) ([]dto.DiscrepancyResponse, error) {
	list, err := uc.discRepo.ListByReceivingDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DiscrepancyResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.DiscrepancyResponse{
			ID:          d.ID,
			ProductID:   d.ProductID,
			Kind:        d.Kind,
			ExpectedQty: d.ExpectedQty,
			FoundQty:    d.FoundQty,
			Lot:         d.Lot,
			Status:      d.Status,
			Priority:    d.Priority,
			Notes:       d.Notes,
		})
	}
	return out, nil
}
