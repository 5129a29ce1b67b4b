package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/allocation"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/ledger"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/outbound"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/application/receiving"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/infrastructure/postgres"
	httpRouter "github.com/luigiluft/gestao-rural-unificada-28-sub003/internal/interfaces/http"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/pkg/config"
	"github.com/luigiluft/gestao-rural-unificada-28-sub003/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	positionRepo := postgres.NewPositionRepository(pool)
	allocationRepo := postgres.NewAllocationRepository(pool)
	palletRepo := postgres.NewPalletRepository(pool)
	docRepo := postgres.NewReceivingDocumentRepository(pool)
	discRepo := postgres.NewDiscrepancyRepository(pool)
	lotRepo := postgres.NewLotBalanceRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	settingsRepo := postgres.NewFranchiseSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	writer := ledger.NewWriter()

	engine := allocation.NewEngine(
		txRunner, positionRepo, allocationRepo, palletRepo, writer,
		allocation.Config{
			ReservationTTL: time.Duration(cfg.Allocation.ReservationTTLMinutes) * time.Minute,
		},
	)
	reconcileUC := receiving.NewReconcileUseCase(
		txRunner, docRepo, discRepo, settingsRepo, writer, nil,
	)
	fefoUC := outbound.NewFefoUseCase(txRunner, lotRepo, writer, nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestão de Armazém API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AllocationEngine: engine,
		ReconcileUC:      reconcileUC,
		FefoUC:           fefoUC,
		WarehouseRepo:    warehouseRepo,
		PalletRepo:       palletRepo,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("servidor encerrado")
}
