package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

var _ repository.FranchiseSettingsRepository = (*FranchiseSettingsRepo)(nil)

// FranchiseSettingsRepo leitura das parametrizações por franquia sobre PostgreSQL.
type FranchiseSettingsRepo struct {
	pool *pgxpool.Pool
}

// NewFranchiseSettingsRepository constrói o adaptador.
func NewFranchiseSettingsRepository(pool *pgxpool.Pool) *FranchiseSettingsRepo {
	return &FranchiseSettingsRepo{pool: pool}
}

// GetByFranchise obtém a parametrização da franquia (nil se não cadastrada).
func (r *FranchiseSettingsRepo) GetByFranchise(ctx context.Context, franchiseID string) (*entity.FranchiseSettings, error) {
	query := `
		SELECT franchise_id, warehouse_management_enabled
		FROM franchise_settings WHERE franchise_id = $1`
	var s entity.FranchiseSettings
	err := r.pool.QueryRow(ctx, query, franchiseID).Scan(&s.FranchiseID, &s.WarehouseManagementEnabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get franchise settings: %w", err)
	}
	return &s, nil
}
