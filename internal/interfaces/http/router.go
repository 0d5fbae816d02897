package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/invorya-admin/internal/application/auth"
	"github.com/jhoicas/invorya-admin/internal/application/catalog"
	"github.com/jhoicas/invorya-admin/internal/application/editor"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	CatalogUC *catalog.CatalogUseCase
	EditorUC  *editor.EditorUseCase
	Log       *logger.Logger
	Metrics   RequestObserver // opcional
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Log, deps.Metrics))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token con sesión viva)
	requireSession := AuthMiddleware(deps.AuthUC)
	api.Post("/auth/logout", requireSession, authHandler.Logout)
	api.Get("/session", requireSession, authHandler.Session)
	api.Put("/session/currency", requireSession, authHandler.SetCurrency)
	api.Get("/currencies", requireSession, authHandler.Currencies)

	// Catálogo (solo lectura)
	catalogGroup := api.Group("/catalog", requireSession)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogGroup.Get("/products", catalogHandler.Products)
	catalogGroup.Get("/customers", catalogHandler.Customers)
	catalogGroup.Get("/suppliers", catalogHandler.Suppliers)

	// Borradores
	drafts := api.Group("/drafts", requireSession)
	draftHandler := NewDraftHandler(deps.EditorUC)
	drafts.Post("/", draftHandler.Open)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Delete("/:id", draftHandler.Cancel)
	drafts.Put("/:id/header", draftHandler.UpdateHeader)
	drafts.Post("/:id/items", draftHandler.AddItem)
	drafts.Delete("/:id/items/:index", draftHandler.RemoveItem)
	drafts.Put("/:id/items/:index/product", draftHandler.SelectProduct)
	drafts.Put("/:id/items/:index/quantity", draftHandler.SetQuantity)
	drafts.Put("/:id/items/:index/price", draftHandler.SetUnitPrice)
	drafts.Post("/:id/submit", draftHandler.Submit)
}
