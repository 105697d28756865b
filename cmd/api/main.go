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

	"github.com/jhoicas/Textil-api/internal/application/auth"
	"github.com/jhoicas/Textil-api/internal/application/billing"
	"github.com/jhoicas/Textil-api/internal/application/inventory"
	"github.com/jhoicas/Textil-api/internal/application/snapshot"
	infrapdf "github.com/jhoicas/Textil-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Textil-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Textil-api/internal/interfaces/http"
	"github.com/jhoicas/Textil-api/pkg/config"
	"github.com/jhoicas/Textil-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// mountSwagger monta la UI de documentación solo si el swagger.json generado
// existe: el middleware hace os.Stat en New y entra en pánico si el archivo
// falta, y un despliegue sin docs no debe impedir el arranque de la API.
func mountSwagger(app *fiber.App, log *logger.Logger) {
	if _, err := os.Stat(swaggerFile); err != nil {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
		return
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: swaggerFile,
		Path:     "docs",
		Title:    "Textil API",
	}))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	proformaRepo := postgres.NewProformaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	hub := snapshot.NewHub(itemRepo, txRepo, log)

	itemUC := inventory.NewItemUseCase(itemRepo, hub)
	registerTxUC := inventory.NewRegisterTransactionUseCase(txRunner, itemRepo, txRepo, hub)
	alertsUC := inventory.NewAlertsUseCase(itemRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGenerator := infrapdf.NewMarotoProformaGenerator()
	proformaUC := billing.NewProformaUseCase(proformaRepo, itemRepo, userRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	mountSwagger(app, log)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ItemUC:      itemUC,
		RegisterTx:  registerTxUC,
		AlertsUC:    alertsUC,
		ProformaUC:  proformaUC,
		SnapshotHub: hub,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
