package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

var _ repository.PalletRepository = (*PalletRepo)(nil)

// PalletRepo implementação de PalletRepository sobre PostgreSQL (pool ou tx).
type PalletRepo struct {
	q Querier
}

// NewPalletRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPalletRepository(q Querier) *PalletRepo {
	return &PalletRepo{q: q}
}

// GetByID obtém um pallet com seus itens.
func (r *PalletRepo) GetByID(ctx context.Context, id string) (*entity.Pallet, error) {
	query := `
		SELECT id, receiving_document_id, sequence_number, description, created_at
		FROM pallets WHERE id = $1`
	var p entity.Pallet
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.ReceivingDocumentID, &p.SequenceNumber, &p.Description, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pallet: %w", err)
	}
	items, err := r.listItems(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return &p, nil
}

// ListByReceivingDocument lista os pallets de um documento com seus itens.
func (r *PalletRepo) ListByReceivingDocument(ctx context.Context, documentID string) ([]*entity.Pallet, error) {
	query := `
		SELECT id, receiving_document_id, sequence_number, description, created_at
		FROM pallets WHERE receiving_document_id = $1 ORDER BY sequence_number`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list pallets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pallet
	for rows.Next() {
		var p entity.Pallet
		if err := rows.Scan(&p.ID, &p.ReceivingDocumentID, &p.SequenceNumber, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pallet: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range list {
		items, err := r.listItems(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Items = items
	}
	return list, nil
}

// Create persiste o pallet e seus itens.
func (r *PalletRepo) Create(ctx context.Context, pallet *entity.Pallet) error {
	query := `
		INSERT INTO pallets (id, receiving_document_id, sequence_number, description, created_at)
		VALUES ($1, $2, $3, $4, now())`
	if _, err := r.q.Exec(ctx, query,
		pallet.ID, pallet.ReceivingDocumentID, pallet.SequenceNumber, pallet.Description,
	); err != nil {
		return fmt.Errorf("create pallet: %w", err)
	}
	itemQuery := `
		INSERT INTO pallet_items (id, pallet_id, receiving_line_item_id, product_id, lot, expiry_date, quantity, unit_value, is_damaged)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, it := range pallet.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			it.ID, pallet.ID, it.ReceivingLineItemID, it.ProductID, it.Lot,
			it.ExpiryDate, it.Quantity, it.UnitValue, it.IsDamaged,
		); err != nil {
			return fmt.Errorf("create pallet item: %w", err)
		}
	}
	return nil
}

func (r *PalletRepo) listItems(ctx context.Context, palletID string) ([]entity.PalletItem, error) {
	query := `
		SELECT id, pallet_id, receiving_line_item_id, product_id, lot, expiry_date, quantity, unit_value, is_damaged
		FROM pallet_items WHERE pallet_id = $1`
	rows, err := r.q.Query(ctx, query, palletID)
	if err != nil {
		return nil, fmt.Errorf("list pallet items: %w", err)
	}
	defer rows.Close()
	var items []entity.PalletItem
	for rows.Next() {
		var it entity.PalletItem
		if err := rows.Scan(&it.ID, &it.PalletID, &it.ReceivingLineItemID, &it.ProductID, &it.Lot,
			&it.ExpiryDate, &it.Quantity, &it.UnitValue, &it.IsDamaged); err != nil {
			return nil, fmt.Errorf("scan pallet item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
