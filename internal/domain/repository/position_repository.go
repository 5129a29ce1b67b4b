package repository

import (
	"context"
	"time"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
)

// PositionRepository define o porto de persistência de posições de armazenagem.
// Reserve e Occupy são escritas condicionais atômicas ("só aplica se disponível"):
// devolvem false quando a condição não vale, nunca leem-e-escrevem em duas idas.
type PositionRepository interface {
	GetByID(ctx context.Context, id string) (*entity.StoragePosition, error)
	// FindAvailable lista as posições disponíveis do armazém ordenadas por código.
	// Reservas expiradas contam como disponíveis (predicado auto-saneante).
	FindAvailable(ctx context.Context, warehouseID string, now time.Time) ([]*entity.StoragePosition, error)
	// Reserve aplica um hold até o instante dado, apenas se a posição estiver disponível.
	Reserve(ctx context.Context, positionID string, until time.Time, now time.Time) (bool, error)
	// Occupy marca a posição ocupada, apenas se disponível ou reservada para o próprio pallet.
	Occupy(ctx context.Context, positionID, palletID string, now time.Time) (bool, error)
	// Free libera a posição (ocupação e hold).
	Free(ctx context.Context, positionID string) error
	// ReleaseExpired limpa holds vencidos do armazém (otimização; a correção não depende dela).
	ReleaseExpired(ctx context.Context, warehouseID string, now time.Time) error
}
