package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/allocation"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/outbound"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/receiving"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/domain/repository"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AllocationEngine *allocation.Engine
	ReconcileUC      *receiving.ReconcileUseCase
	FefoUC           *outbound.FefoUseCase
	WarehouseRepo    repository.WarehouseRepository
	PalletRepo       repository.PalletRepository
	JWTSecret        string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses e posições (protegido; gate de franquia nas rotas com :warehouse_id)
	warehouseHandler := NewWarehouseHandler(deps.WarehouseRepo)
	allocationHandler := NewAllocationHandler(deps.AllocationEngine)
	outboundHandler := NewOutboundHandler(deps.FefoUC)

	warehouses := protected.Group("/warehouses")
	warehouses.Get("/", warehouseHandler.List)

	scoped := warehouses.Group("/:warehouse_id", FranchiseGuard(deps.WarehouseRepo))
	scoped.Get("/", warehouseHandler.GetByID)
	scoped.Get("/positions/available", allocationHandler.ListAvailablePositions)
	scoped.Get("/lots", outboundHandler.SelectLots)

	// Alocação de pallets (protegido)
	allocations := protected.Group("/allocations")
	allocations.Post("/auto", allocationHandler.AutoAllocate)
	allocations.Post("/confirm", allocationHandler.Confirm)
	allocations.Post("/reallocate", allocationHandler.Reallocate)
	allocations.Delete("/:pallet_id", RequireRole(RoleAdmin, "operador"), allocationHandler.Remove)

	// Recebimento (protegido)
	receivingHandler := NewReceivingHandler(deps.ReconcileUC, deps.PalletRepo)
	receivingGroup := protected.Group("/receiving")
	receivingGroup.Post("/:id/confirm", receivingHandler.Confirm)
	receivingGroup.Get("/:id/discrepancies", receivingHandler.ListDiscrepancies)
	receivingGroup.Get("/:id/pallets", receivingHandler.ListPallets)

	// Pallets (protegido)
	pallets := protected.Group("/pallets")
	pallets.Get("/:id", receivingHandler.GetPallet)

	// Saída de estoque (protegido)
	outboundGroup := protected.Group("/outbound")
	outboundGroup.Post("/deplete", outboundHandler.Deplete)
}
