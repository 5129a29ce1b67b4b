package repository

import (
	"context"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
)

// FranchiseSettingsRepository define o porto de leitura das parametrizações por franquia.
type FranchiseSettingsRepository interface {
	GetByFranchise(ctx context.Context, franchiseID string) (*entity.FranchiseSettings, error)
}
