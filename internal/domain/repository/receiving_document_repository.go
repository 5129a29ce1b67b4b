package repository

import (
	"context"
	"time"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
)

// ReceivingDocumentRepository define o porto dos documentos de recebimento.
type ReceivingDocumentRepository interface {
	// GetByID devolve o documento com seus itens de linha.
	GetByID(ctx context.Context, id string) (*entity.ReceivingDocument, error)
	UpdateStatus(ctx context.Context, id, status string, now time.Time) error
}
