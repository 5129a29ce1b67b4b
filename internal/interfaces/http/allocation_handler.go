package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/allocation"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/dto"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/entity"
)

// AllocationHandler trata as requisições HTTP do motor de alocação (protegido).
type AllocationHandler struct {
	engine *allocation.Engine
}

// NewAllocationHandler constrói o handler.
func NewAllocationHandler(engine *allocation.Engine) *AllocationHandler {
	return &AllocationHandler{engine: engine}
}

// AutoAllocate godoc
// @Summary      Reservar posição automaticamente para um pallet
// @Tags         allocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AutoAllocateRequest  true  "Pallet e armazém"
// @Success      200   {object}  dto.AutoAllocateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/allocations/auto [post]
func (h *AllocationHandler) AutoAllocate(c *fiber.Ctx) error {
	var in dto.AutoAllocateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.PalletID == "" || in.WarehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pallet_id e warehouse_id são obrigatórios"})
	}
	out, err := h.engine.AutoAllocate(c.Context(), in.PalletID, in.WarehouseID, GetUserID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar alocação (manual ou coletor)
// @Tags         allocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmAllocationRequest  true  "Confirmação"
// @Success      200   {object}  dto.AllocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/allocations/confirm [post]
func (h *AllocationHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmAllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.PalletID == "" || in.PositionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pallet_id e position_id são obrigatórios"})
	}
	if in.Method == "" {
		in.Method = entity.ConfirmMethodManual
	}
	out, err := h.engine.Confirm(c.Context(), in, GetUserID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Reallocate godoc
// @Summary      Remanejar pallet alocado para outra posição
// @Tags         allocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReallocateRequest  true  "Destino"
// @Success      200   {object}  dto.AllocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/allocations/reallocate [post]
func (h *AllocationHandler) Reallocate(c *fiber.Ctx) error {
	var in dto.ReallocateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.PalletID == "" || in.DestinationPositionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pallet_id e destination_position_id são obrigatórios"})
	}
	out, err := h.engine.Reallocate(c.Context(), in.PalletID, in.DestinationPositionID, in.Notes, GetUserID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Remover pallet da posição (libera o endereço)
// @Tags         allocations
// @Security     Bearer
// @Produce      json
// @Param        pallet_id  path  string  true  "ID do pallet"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/allocations/{pallet_id} [delete]
func (h *AllocationHandler) Remove(c *fiber.Ctx) error {
	palletID := c.Params("pallet_id")
	if palletID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "pallet_id é obrigatório"})
	}
	if err := h.engine.Remove(c.Context(), palletID, GetUserID(c)); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAvailablePositions godoc
// @Summary      Listar posições disponíveis de um armazém
// @Tags         positions
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path  string  true  "ID do armazém"
// @Success      200  {array}  dto.PositionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{warehouse_id}/positions/available [get]
func (h *AllocationHandler) ListAvailablePositions(c *fiber.Ctx) error {
	warehouseID := c.Params("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "warehouse_id é obrigatório"})
	}
	out, err := h.engine.ListAvailablePositions(c.Context(), warehouseID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
