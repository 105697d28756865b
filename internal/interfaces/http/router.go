package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Textil-api/internal/application/auth"
	"github.com/jhoicas/Textil-api/internal/application/billing"
	"github.com/jhoicas/Textil-api/internal/application/inventory"
	"github.com/jhoicas/Textil-api/internal/application/snapshot"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ItemUC      *inventory.ItemUseCase
	RegisterTx  *inventory.RegisterTransactionUseCase
	AlertsUC    *inventory.AlertsUseCase
	ProformaUC  *billing.ProformaUseCase
	SnapshotHub *snapshot.Hub
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Ledger, alertas y snapshot (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterTx, deps.AlertsUC, deps.SnapshotHub)
	invGroup.Post("/transactions", inventoryHandler.RegisterTransaction)
	invGroup.Get("/transactions", inventoryHandler.ListTransactions)
	invGroup.Get("/alerts", inventoryHandler.Alerts)
	invGroup.Get("/stats", inventoryHandler.Stats)
	invGroup.Get("/snapshot", inventoryHandler.Snapshot)

	// Proformas (protegido)
	proformas := protected.Group("/proformas")
	proformaHandler := NewProformaHandler(deps.ProformaUC)
	proformas.Post("/", proformaHandler.Create)
	proformas.Get("/", proformaHandler.List)
	proformas.Get("/:id", proformaHandler.GetByID)
	proformas.Get("/:id/pdf", proformaHandler.DownloadPDF)
}
