// seed crea el usuario administrador inicial si la tabla de usuarios está
// vacía, y opcionalmente un catálogo de demostración con movimientos.
//
// Uso: go run ./cmd/seed [-demo]
// Variables: ADMIN_USERNAME (default "admin"), ADMIN_PASSWORD (default "admin").
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-lite/internal/domain/entity"
	"github.com/jhoicas/inventario-lite/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-lite/pkg/config"
	"github.com/jhoicas/inventario-lite/pkg/logger"
)

func main() {
	demo := flag.Bool("demo", false, "crear productos y movimientos de demostración")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	count, err := users.Count()
	if err != nil {
		log.Fatal().Err(err).Msg("contar usuarios")
	}

	if count == 0 {
		username := envOr("ADMIN_USERNAME", "admin")
		password := envOr("ADMIN_PASSWORD", "admin")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hashear password")
		}
		now := time.Now()
		id, err := users.Create(&entity.User{
			Username:     username,
			PasswordHash: string(hash),
			Role:         entity.RoleAdmin,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("crear admin inicial")
		}
		log.Info().Int64("id", id).Str("username", username).Msg("admin inicial creado")
	} else {
		log.Info().Int("usuarios", count).Msg("ya hay usuarios; no se crea admin")
	}

	if *demo {
		seedDemo(pool, log)
	}
}

func seedDemo(pool *pgxpool.Pool, log *logger.Logger) {
	products := postgres.NewProductRepository(pool)
	movements := postgres.NewStockMovementRepository(pool)

	demo := []struct {
		sku, name string
		cost      string
		reorder   int
		initial   int64
	}{
		{"WID-001", "Widget azul", "2.50", 10, 50},
		{"WID-002", "Widget rojo", "2.75", 10, 8},
		{"CAB-USB", "Cable USB-C 1m", "4.00", 20, 120},
		{"TOR-M4", "Tornillo M4 (caja 100)", "1.20", 5, 3},
	}

	now := time.Now()
	for _, d := range demo {
		existing, err := products.GetBySKU(d.sku)
		if err != nil {
			log.Fatal().Err(err).Str("sku", d.sku).Msg("consultar producto demo")
		}
		if existing != nil {
			continue
		}
		cost, _ := decimal.NewFromString(d.cost)
		id, err := products.Create(&entity.Product{
			SKU:          d.sku,
			Name:         d.name,
			UnitCost:     cost,
			ReorderPoint: d.reorder,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			log.Fatal().Err(err).Str("sku", d.sku).Msg("crear producto demo")
		}
		if d.initial > 0 {
			if _, err := movements.Create(&entity.StockMovement{
				ProductID: id,
				Kind:      entity.MovementIN,
				Quantity:  d.initial,
				Note:      "carga inicial",
				CreatedAt: now,
			}); err != nil {
				log.Fatal().Err(err).Str("sku", d.sku).Msg("movimiento inicial demo")
			}
		}
		log.Info().Str("sku", d.sku).Int64("id", id).Msg("producto demo creado")
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
