package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/dto"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/outbound"
)

// OutboundHandler trata as requisições HTTP de saída FEFO (protegido).
type OutboundHandler struct {
	uc *outbound.FefoUseCase
}

// NewOutboundHandler constrói o handler.
func NewOutboundHandler(uc *outbound.FefoUseCase) *OutboundHandler {
	return &OutboundHandler{uc: uc}
}

// SelectLots godoc
// @Summary      Listar lotes candidatos à baixa em ordem FEFO
// @Tags         outbound
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path   string  true  "ID do armazém"
// @Param        product_id    query  string  true  "ID do produto"
// @Success      200  {array}  dto.LotCandidateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{warehouse_id}/lots [get]
func (h *OutboundHandler) SelectLots(c *fiber.Ctx) error {
	warehouseID := c.Params("warehouse_id")
	productID := c.Query("product_id")
	if warehouseID == "" || productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id e product_id são obrigatórios"})
	}
	out, err := h.uc.SelectLots(c.Context(), productID, warehouseID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Deplete godoc
// @Summary      Baixar estoque contra um lote escolhido
// @Tags         outbound
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DepleteRequest  true  "Baixa"
// @Success      200   {object}  dto.DepleteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/outbound/deplete [post]
func (h *OutboundHandler) Deplete(c *fiber.Ctx) error {
	var in dto.DepleteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Deplete(c.Context(), in, GetUserID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
