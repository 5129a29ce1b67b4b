package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/dto"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

// WarehouseHandler trata as requisições HTTP de armazéns (protegido).
type WarehouseHandler struct {
	repo repository.WarehouseRepository
}

// NewWarehouseHandler constrói o handler.
func NewWarehouseHandler(repo repository.WarehouseRepository) *WarehouseHandler {
	return &WarehouseHandler{repo: repo}
}

// FranchiseGuard bloqueia acesso a armazéns de outra franquia em rotas
// com :warehouse_id. Administradores passam direto.
func FranchiseGuard(repo repository.WarehouseRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if IsAdmin(c) {
			return c.Next()
		}
		warehouseID := c.Params("warehouse_id")
		if warehouseID == "" {
			return c.Next()
		}
		wh, err := repo.GetByID(c.Context(), warehouseID)
		if err != nil {
			return writeDomainError(c, err)
		}
		if wh == nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "armazém não encontrado"})
		}
		if wh.FranchiseID != GetFranchiseID(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "armazém de outra franquia"})
		}
		return c.Next()
	}
}

// List godoc
// @Summary      Listar armazéns da franquia do operador
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  entity.Warehouse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros de página inválidos"})
	}
	page.DefaultPage()
	out, err := h.repo.ListByFranchise(c.Context(), GetFranchiseID(c), page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Consultar um armazém por ID
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path  string  true  "ID do armazém"
// @Success      200  {object}  entity.Warehouse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{warehouse_id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("warehouse_id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "warehouse_id é obrigatório"})
	}
	wh, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	if wh == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "armazém não encontrado"})
	}
	return c.JSON(wh)
}
