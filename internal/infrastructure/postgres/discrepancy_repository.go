package postgres

import (
	"context"
	"fmt"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

var _ repository.DiscrepancyRepository = (*DiscrepancyRepo)(nil)

// DiscrepancyRepo implementação das divergências de recebimento sobre PostgreSQL (pool ou tx).
type DiscrepancyRepo struct {
	q Querier
}

// NewDiscrepancyRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewDiscrepancyRepository(q Querier) *DiscrepancyRepo {
	return &DiscrepancyRepo{q: q}
}

// Create persiste uma divergência.
func (r *DiscrepancyRepo) Create(ctx context.Context, d *entity.Discrepancy) error {
	query := `
		INSERT INTO discrepancies (id, receiving_document_id, product_id, origin_type, kind, expected_qty, found_qty, lot, status, priority, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	if _, err := r.q.Exec(ctx, query,
		d.ID, d.ReceivingDocumentID, d.ProductID, d.OriginType, d.Kind,
		d.ExpectedQty, d.FoundQty, d.Lot, d.Status, d.Priority, d.Notes, d.CreatedAt, d.CreatedBy,
	); err != nil {
		return fmt.Errorf("create discrepancy: %w", err)
	}
	return nil
}

// ListByReceivingDocument lista as divergências de um documento, mais prioritárias primeiro.
func (r *DiscrepancyRepo) ListByReceivingDocument(ctx context.Context, documentID string) ([]*entity.Discrepancy, error) {
	query := `
		SELECT id, receiving_document_id, product_id, origin_type, kind, expected_qty, found_qty, lot, status, priority, notes, created_at, created_by
		FROM discrepancies
		WHERE receiving_document_id = $1
		ORDER BY CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, created_at`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list discrepancies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Discrepancy
	for rows.Next() {
		var d entity.Discrepancy
		if err := rows.Scan(&d.ID, &d.ReceivingDocumentID, &d.ProductID, &d.OriginType, &d.Kind,
			&d.ExpectedQty, &d.FoundQty, &d.Lot, &d.Status, &d.Priority, &d.Notes, &d.CreatedAt, &d.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan discrepancy: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
