package repository

import (
	"context"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
)

// PalletRepository define o porto de leitura/escrita de pallets com seus itens.
type PalletRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Pallet, error)
	ListByReceivingDocument(ctx context.Context, documentID string) ([]*entity.Pallet, error)
	Create(ctx context.Context, pallet *entity.Pallet) error
}
