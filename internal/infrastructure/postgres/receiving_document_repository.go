package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

var _ repository.ReceivingDocumentRepository = (*ReceivingDocumentRepo)(nil)

// ReceivingDocumentRepo implementação dos documentos de recebimento sobre PostgreSQL (pool ou tx).
type ReceivingDocumentRepo struct {
	q Querier
}

// NewReceivingDocumentRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewReceivingDocumentRepository(q Querier) *ReceivingDocumentRepo {
	return &ReceivingDocumentRepo{q: q}
}

// GetByID obtém o documento com seus itens de linha.
func (r *ReceivingDocumentRepo) GetByID(ctx context.Context, id string) (*entity.ReceivingDocument, error) {
	query := `
		SELECT id, warehouse_id, franchise_id, approval_status, created_at, updated_at
		FROM receiving_documents WHERE id = $1`
	var d entity.ReceivingDocument
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.WarehouseID, &d.FranchiseID, &d.ApprovalStatus, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receiving document: %w", err)
	}

	itemQuery := `
		SELECT id, receiving_document_id, product_id, lot, expiry_date, quantity, unit_value
		FROM receiving_line_items WHERE receiving_document_id = $1`
	rows, err := r.q.Query(ctx, itemQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list receiving items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.ReceivingLineItem
		if err := rows.Scan(&it.ID, &it.ReceivingDocumentID, &it.ProductID, &it.Lot,
			&it.ExpiryDate, &it.Quantity, &it.UnitValue); err != nil {
			return nil, fmt.Errorf("scan receiving item: %w", err)
		}
		d.Items = append(d.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateStatus persiste a transição de status do documento.
func (r *ReceivingDocumentRepo) UpdateStatus(ctx context.Context, id, status string, now time.Time) error {
	query := `UPDATE receiving_documents SET approval_status = $2, updated_at = $3 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, status, now)
	if err != nil {
		return fmt.Errorf("update receiving status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
