// Package http expone la API sobre Fiber: handlers finos que parsean la
// request, delegan en los casos de uso y mapean errores de dominio a HTTP.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-lite/internal/application/ai"
	"github.com/jhoicas/inventario-lite/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *usecase.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	MovementUC *usecase.MovementUseCase
	QueryUC    *usecase.QueryUseCase
	UserUC     *usecase.UserUseCase
	Resolver   *ai.Resolver
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; el resto exige Bearer Token)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.QueryUC)
	movementHandler := NewMovementHandler(deps.MovementUC, deps.QueryUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/movements", movementHandler.ListByProduct)

	// Ledger (protegido)
	protected.Post("/movements", movementHandler.Register)
	protected.Get("/inventory/changes", movementHandler.Changes)

	// Consulta en lenguaje natural (protegido)
	aiHandler := NewAIHandler(deps.Resolver, deps.QueryUC)
	protected.Post("/ai/query", aiHandler.Query)

	// Users (protegido; la puerta exige ADMIN)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Put("/:id/active", userHandler.SetActive)
}
