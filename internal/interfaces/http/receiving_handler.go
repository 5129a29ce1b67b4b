package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/dto"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/receiving"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

// ReceivingHandler trata as requisições HTTP de recebimento (protegido).
type ReceivingHandler struct {
	uc         *receiving.ReconcileUseCase
	palletRepo repository.PalletRepository
}

// NewReceivingHandler constrói o handler.
func NewReceivingHandler(uc *receiving.ReconcileUseCase, palletRepo repository.PalletRepository) *ReceivingHandler {
	return &ReceivingHandler{uc: uc, palletRepo: palletRepo}
}

// Confirm godoc
// @Summary      Confirmar conferência de um documento de recebimento
// @Tags         receiving
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do documento"
// @Param        body  body  dto.ReconcileConfirmationRequest  true  "Divergências apontadas"
// @Success      200   {object}  dto.ReconcileConfirmationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receiving/{id}/confirm [post]
func (h *ReceivingHandler) Confirm(c *fiber.Ctx) error {
	documentID := c.Params("id")
	if documentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	var in dto.ReconcileConfirmationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	actor := receiving.Actor{
		UserID:      GetUserID(c),
		FranchiseID: GetFranchiseID(c),
		Admin:       IsAdmin(c),
	}
	out, err := h.uc.ReconcileConfirmation(c.Context(), documentID, in, actor)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// ListDiscrepancies godoc
// @Summary      Listar divergências de um documento de recebimento
// @Tags         receiving
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do documento"
// @Success      200  {array}  dto.DiscrepancyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/receiving/{id}/discrepancies [get]
func (h *ReceivingHandler) ListDiscrepancies(c *fiber.Ctx) error {
	documentID := c.Params("id")
	if documentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	out, err := h.uc.ListDiscrepancies(c.Context(), documentID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// ListPallets godoc
// @Summary      Listar pallets montados de um documento de recebimento
// @Tags         receiving
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do documento"
// @Success      200  {array}  entity.Pallet
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/receiving/{id}/pallets [get]
func (h *ReceivingHandler) ListPallets(c *fiber.Ctx) error {
	documentID := c.Params("id")
	if documentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	out, err := h.palletRepo.ListByReceivingDocument(c.Context(), documentID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// GetPallet godoc
// @Summary      Consultar um pallet por ID
// @Tags         pallets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pallet"
// @Success      200  {object}  entity.Pallet
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pallets/{id} [get]
func (h *ReceivingHandler) GetPallet(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	pallet, err := h.palletRepo.GetByID(c.Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	if pallet == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pallet não encontrado"})
	}
	return c.JSON(pallet)
}
