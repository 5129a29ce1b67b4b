package repository

import (
	"context"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
)

// DiscrepancyRepository define o porto das divergências de recebimento.
type DiscrepancyRepository interface {
	Create(ctx context.Context, discrepancy *entity.Discrepancy) error
	ListByReceivingDocument(ctx context.Context, documentID string) ([]*entity.Discrepancy, error)
}
