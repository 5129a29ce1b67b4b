package repository

import (
	"context"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
)

// WarehouseRepository define o porto de persistência de armazéns.
type WarehouseRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	ListByFranchise(ctx context.Context, franchiseID string, limit, offset int) ([]*entity.Warehouse, error)
}
