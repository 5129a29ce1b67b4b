package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Erros de domínio (sem dependências de infraestrutura).
var (
	ErrNotFound          = errors.New("recurso não encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflito com o estado atual")
	ErrForbidden         = errors.New("acesso negado")
	ErrInsufficientStock = errors.New("estoque insuficiente")
	ErrNoPositionFree    = errors.New("nenhuma posição disponível")
)

// ScannerMismatchError indica que o código lido pelo coletor não confere com o esperado.
// Carrega os dois valores para que o operador veja o que leu versus o que deveria ler.
type ScannerMismatchError struct {
	Field    string // "pallet" ou "position"
	Expected string
	Scanned  string
}

func (e *ScannerMismatchError) Error() string {
	return fmt.Sprintf("código lido não confere (%s): esperado %q, lido %q", e.Field, e.Expected, e.Scanned)
}

// InsufficientStockError indica que a baixa solicitada excede o saldo do lote.
// Carrega o saldo real para que o operador ajuste o pedido de saída.
type InsufficientStockError struct {
	Lot       string
	Remaining decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("estoque insuficiente no lote %s: saldo atual %s", e.Lot, e.Remaining)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
