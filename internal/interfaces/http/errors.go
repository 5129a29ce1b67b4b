package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/dto"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain"
)

// scannerMismatchResponse corpo de erro da conferência via coletor.
type scannerMismatchResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Field    string `json:"field"`
	Expected string `json:"expected"`
	Scanned  string `json:"scanned"`
}

// insufficientStockResponse corpo de erro de saldo insuficiente.
type insufficientStockResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Lot       string `json:"lot"`
	Remaining string `json:"remaining"`
}

// writeDomainError traduz erros de domínio para status HTTP.
func writeDomainError(c *fiber.Ctx, err error) error {
	var mismatch *domain.ScannerMismatchError
	if errors.As(err, &mismatch) {
		return c.Status(fiber.StatusConflict).JSON(scannerMismatchResponse{
			Code:     "SCANNER_MISMATCH",
			Message:  mismatch.Error(),
			Field:    mismatch.Field,
			Expected: mismatch.Expected,
			Scanned:  mismatch.Scanned,
		})
	}
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(insufficientStockResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   insufficient.Error(),
			Lot:       insufficient.Lot,
			Remaining: insufficient.Remaining.String(),
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNoPositionFree):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_POSITION_FREE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
