package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sweetshop/sweet-shop-api/internal/application/auth"
	"github.com/sweetshop/sweet-shop-api/internal/application/chat"
	"github.com/sweetshop/sweet-shop-api/internal/application/ledger"
	"github.com/sweetshop/sweet-shop-api/internal/application/usecase"
	"github.com/sweetshop/sweet-shop-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	SweetUC   *usecase.SweetUseCase
	Ledger    *ledger.Ledger
	AuthUC    *auth.AuthUseCase
	Responder *chat.Responder
	JWTSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catalog reads (public)
	sweetHandler := NewSweetHandler(deps.SweetUC)
	sweets := api.Group("/sweets")
	sweets.Get("/", sweetHandler.List)
	sweets.Get("/categories", sweetHandler.Categories)
	sweets.Get("/:id", sweetHandler.GetByID)

	// Chat assistant (public)
	chatHandler := NewChatHandler(deps.Responder)
	api.Post("/chat", chatHandler.Message)

	authRequired := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Purchases (any authenticated user)
	ledgerHandler := NewLedgerHandler(deps.Ledger)
	sweets.Post("/:id/purchase", authRequired, ledgerHandler.Purchase)
	api.Get("/purchases", authRequired, ledgerHandler.ListPurchases)

	// Catalog writes and restock (admin)
	sweets.Post("/", authRequired, adminOnly, sweetHandler.Create)
	sweets.Put("/:id", authRequired, adminOnly, sweetHandler.Update)
	sweets.Delete("/:id", authRequired, adminOnly, sweetHandler.Delete)
	sweets.Post("/:id/restock", authRequired, adminOnly, ledgerHandler.Restock)
}
