package receiving_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/receiving"
)

// ──────────────────────────────────────────────────────────────────────────────
// Classificação de texto livre → taxonomia fixa
// ──────────────────────────────────────────────────────────────────────────────

func TestClassifyKind_PalavrasChave(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Avaria", entity.DiscrepancyKindDamage},
		{"produto avariado na doca", entity.DiscrepancyKindDamage},
		{"caixa QUEBRADA", entity.DiscrepancyKindDamage},
		{"produto faltante", entity.DiscrepancyKindMissingProduct},
		{"falta de mercadoria", entity.DiscrepancyKindMissingProduct},
		{"não recebido", entity.DiscrepancyKindMissingProduct},
		{"excesso de caixas", entity.DiscrepancyKindExcessProduct},
		{"veio sobra", entity.DiscrepancyKindExcessProduct},
		{"lote divergente", entity.DiscrepancyKindWrongLot},
		{"validade errada", entity.DiscrepancyKindWrongExpiry},
		{"vencimento incorreto", entity.DiscrepancyKindWrongExpiry},
		{"quantidade errada", entity.DiscrepancyKindWrongQuantity},
		{"qtd diferente da nota", entity.DiscrepancyKindWrongQuantity},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, receiving.ClassifyKind(tc.raw),
			"texto %q deve classificar como %s", tc.raw, tc.want)
	}
}

// Acentuação inconsistente dos conferentes não pode mudar a classificação.
func TestClassifyKind_IgnoraAcentosECaixa(t *testing.T) {
	assert.Equal(t, entity.DiscrepancyKindDamage, receiving.ClassifyKind("AVARÍA"))
	assert.Equal(t, entity.DiscrepancyKindMissingProduct, receiving.ClassifyKind("Não Recebido"))
	assert.Equal(t, entity.DiscrepancyKindWrongExpiry, receiving.ClassifyKind("  VALIDADE  "))
}

// Texto sem casamento cai em wrong_quantity, nunca em erro.
func TestClassifyKind_DefaultWrongQuantity(t *testing.T) {
	assert.Equal(t, entity.DiscrepancyKindWrongQuantity, receiving.ClassifyKind("algo estranho aconteceu"))
	assert.Equal(t, entity.DiscrepancyKindWrongQuantity, receiving.ClassifyKind(""))
}

// Avaria tem precedência sobre as demais categorias quando o texto cita ambas.
func TestClassifyKind_AvariaTemPrecedencia(t *testing.T) {
	assert.Equal(t, entity.DiscrepancyKindDamage,
		receiving.ClassifyKind("quantidade errada por avaria no transporte"))
}

func TestDefaultPriority(t *testing.T) {
	assert.Equal(t, entity.DiscrepancyPriorityHigh, receiving.DefaultPriority(entity.DiscrepancyKindDamage),
		"avaria deve ter prioridade alta por padrão")
	assert.Equal(t, entity.DiscrepancyPriorityMedium, receiving.DefaultPriority(entity.DiscrepancyKindMissingProduct))
	assert.Equal(t, entity.DiscrepancyPriorityMedium, receiving.DefaultPriority(entity.DiscrepancyKindWrongQuantity))
}

func TestDamagedQty(t *testing.T) {
	assert.True(t, decimal.NewFromInt(3).Equal(
		receiving.DamagedQty(decimal.NewFromInt(10), decimal.NewFromInt(7))))
	assert.True(t, decimal.Zero.Equal(
		receiving.DamagedQty(decimal.NewFromInt(5), decimal.NewFromInt(8))),
		"encontrado maior que esperado não gera quantidade avariada negativa")
}

// ──────────────────────────────────────────────────────────────────────────────
// Sanitização de status e transição de confirmação
// ──────────────────────────────────────────────────────────────────────────────

func TestSanitizeStatus(t *testing.T) {
	assert.Equal(t, entity.ReceivingStatusConfirmed, receiving.SanitizeStatus("confirmed"))
	assert.Equal(t, entity.ReceivingStatusPlanning, receiving.SanitizeStatus("planning"))
	assert.Equal(t, entity.ReceivingStatusAwaitingTransport, receiving.SanitizeStatus("qualquer coisa"),
		"status fora da enumeração cai no estado inicial")
	assert.Equal(t, entity.ReceivingStatusAwaitingTransport, receiving.SanitizeStatus(""))
}

func TestCanConfirm(t *testing.T) {
	assert.NoError(t, receiving.CanConfirm(entity.ReceivingStatusAwaitingConference))
	assert.NoError(t, receiving.CanConfirm(entity.ReceivingStatusConferenceComplete))

	assert.ErrorIs(t, receiving.CanConfirm(entity.ReceivingStatusConfirmed), domain.ErrConflict,
		"documento já confirmado conflita com nova confirmação")
	assert.ErrorIs(t, receiving.CanConfirm(entity.ReceivingStatusRejected), domain.ErrConflict)

	assert.ErrorIs(t, receiving.CanConfirm(entity.ReceivingStatusInTransfer), domain.ErrInvalidInput)
	assert.ErrorIs(t, receiving.CanConfirm("status desconhecido"), domain.ErrInvalidInput,
		"status inválido sanitiza para awaiting_transport, que não permite confirmar")
}
