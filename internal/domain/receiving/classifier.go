package receiving

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
)

// Palavras-chave por categoria, testadas nesta ordem. O texto de entrada vem livre
// dos conferentes (português, com erros de digitação e acentuação inconsistente),
// então a comparação ignora caixa e diacríticos.
var kindKeywords = []struct {
	kind     string
	keywords []string
}{
	{entity.DiscrepancyKindDamage, []string{"avaria", "avariado", "danific", "quebra", "damage"}},
	{entity.DiscrepancyKindMissingProduct, []string{"faltante", "falta", "nao recebido", "missing"}},
	{entity.DiscrepancyKindExcessProduct, []string{"excesso", "excedente", "sobra", "excess"}},
	{entity.DiscrepancyKindWrongLot, []string{"lote", "lot"}},
	{entity.DiscrepancyKindWrongExpiry, []string{"validade", "vencimento", "expir"}},
	{entity.DiscrepancyKindWrongQuantity, []string{"quantidade", "quantity", "qtd"}},
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeText prepara o texto livre para casamento de palavras-chave:
// minúsculas e sem diacríticos ("Avaría" → "avaria").
func normalizeText(s string) string {
	out, _, err := transform.String(stripAccents, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// ClassifyKind mapeia o tipo de divergência em texto livre para a taxonomia fixa.
// Sem casamento de palavra-chave, o default é wrong_quantity (ramo explícito,
// nunca erro): a divergência mais comum na operação.
func ClassifyKind(raw string) string {
	text := normalizeText(raw)
	for _, entry := range kindKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.kind
			}
		}
	}
	return entity.DiscrepancyKindWrongQuantity
}

// DefaultPriority devolve a prioridade padrão para uma categoria: avarias são high,
// o restante medium. Usada apenas quando o conferente não informou prioridade.
func DefaultPriority(kind string) string {
	if kind == entity.DiscrepancyKindDamage {
		return entity.DiscrepancyPriorityHigh
	}
	return entity.DiscrepancyPriorityMedium
}

// DamagedQty calcula a quantidade avariada implícita quando não informada:
// max(0, esperado - encontrado).
func DamagedQty(expected, found decimal.Decimal) decimal.Decimal {
	diff := expected.Sub(found)
	if diff.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return diff
}

// DamagedQtyNote formata a observação gravada na divergência de avaria
// quando a quantidade avariada foi calculada e não informada.
func DamagedQtyNote(qty decimal.Decimal) string {
	return fmt.Sprintf("quantidade avariada calculada: %s", qty)
}
