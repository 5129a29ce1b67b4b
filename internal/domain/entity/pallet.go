package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pallet agrupa itens de um recebimento em uma unidade física endereçável.
// Description é o código impresso na etiqueta, conferido pelo coletor na confirmação.
type Pallet struct {
	ID                  string
	ReceivingDocumentID string
	SequenceNumber      int
	Description         string
	Items               []PalletItem
	CreatedAt           time.Time
}

// PalletItem referencia um item do documento de recebimento contido no pallet.
// Itens avariados não geram lançamento de estoque.
type PalletItem struct {
	ID                  string
	PalletID            string
	ReceivingLineItemID string
	ProductID           string
	Lot                 string
	ExpiryDate          *time.Time
	Quantity            decimal.Decimal
	UnitValue           decimal.Decimal
	IsDamaged           bool
}

// SoundItems devolve apenas os itens elegíveis para criação de estoque (não avariados).
func (p *Pallet) SoundItems() []PalletItem {
	out := make([]PalletItem, 0, len(p.Items))
	for _, it := range p.Items {
		if !it.IsDamaged {
			out = append(out, it)
		}
	}
	return out
}
