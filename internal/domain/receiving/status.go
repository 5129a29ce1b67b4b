package receiving

import (
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
)

var validStatuses = map[string]bool{
	entity.ReceivingStatusAwaitingTransport:  true,
	entity.ReceivingStatusInTransfer:         true,
	entity.ReceivingStatusAwaitingConference: true,
	entity.ReceivingStatusConferenceComplete: true,
	entity.ReceivingStatusConfirmed:          true,
	entity.ReceivingStatusRejected:           true,
	entity.ReceivingStatusPlanning:           true,
}

// SanitizeStatus normaliza um status de aprovação vindo de fora da enumeração.
// Valores desconhecidos NÃO são rejeitados: caem no estado inicial
// (awaiting_transport). Escolha deliberada por compatibilidade com chamadores
// legados; é o único ponto do motor em que se aplica default em vez de falhar.
func SanitizeStatus(raw string) string {
	if validStatuses[raw] {
		return raw
	}
	return entity.ReceivingStatusAwaitingTransport
}

// CanConfirm valida a transição do documento para confirmed.
// Permitida a partir dos estados de conferência; documentos já encerrados
// (confirmed/rejected) conflitam com nova confirmação.
func CanConfirm(current string) error {
	switch SanitizeStatus(current) {
	case entity.ReceivingStatusAwaitingConference, entity.ReceivingStatusConferenceComplete:
		return nil
	case entity.ReceivingStatusConfirmed, entity.ReceivingStatusRejected:
		return domain.ErrConflict
	default:
		return domain.ErrInvalidInput
	}
}
