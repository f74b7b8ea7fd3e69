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

	appai "github.com/jhoicas/inventario-lite/internal/application/ai"
	"github.com/jhoicas/inventario-lite/internal/application/ports"
	"github.com/jhoicas/inventario-lite/internal/application/usecase"
	infraai "github.com/jhoicas/inventario-lite/internal/infrastructure/ai"
	"github.com/jhoicas/inventario-lite/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-lite/internal/interfaces/http"
	"github.com/jhoicas/inventario-lite/pkg/config"
	"github.com/jhoicas/inventario-lite/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo, movementRepo)
	movementUC := usecase.NewMovementUseCase(txRunner, movementRepo)
	queryUC := usecase.NewQueryUseCase(productRepo, movementRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := usecase.NewAuthUseCase(userRepo, sessionRepo, usecase.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Nivel remoto del resolutor según el proveedor configurado. "off" deja
	// solo el parser local y el fallback de búsqueda por nombre.
	var interpreter ports.IntentInterpreter
	switch cfg.AI.Provider {
	case "http":
		if cfg.AI.InterpretURL == "" {
			log.Warn().Msg("AI_PROVIDER=http sin AI_INTERPRET_URL; intérprete remoto deshabilitado")
		} else {
			interpreter = infraai.NewHTTPInterpreter(cfg.AI.InterpretURL)
		}
	case "openai":
		if cfg.AI.OpenAIAPIKey == "" {
			log.Warn().Msg("AI_PROVIDER=openai sin OPENAI_API_KEY; intérprete remoto deshabilitado")
		} else {
			interpreter = infraai.NewOpenAIInterpreter(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIModel)
		}
	case "off":
	default:
		log.Warn().Str("provider", cfg.AI.Provider).Msg("AI_PROVIDER desconocido; intérprete remoto deshabilitado")
	}
	resolver := appai.NewResolver(interpreter, cfg.App.Timezone, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Lite API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		MovementUC: movementUC,
		QueryUC:    queryUC,
		UserUC:     userUC,
		Resolver:   resolver,
		JWTSecret:  cfg.JWT.Secret,
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
