package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmarulo/salesledger-api/internal/application/auth"
	"github.com/jmarulo/salesledger-api/internal/application/sales"
	"github.com/jmarulo/salesledger-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	ProductUC  *usecase.ProductUseCase
	LocationUC *usecase.LocationUseCase
	SalesmanUC *usecase.SalesmanUseCase
	CreateSale *sales.CreateSaleUseCase
	ListSales  *sales.ListSalesUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer token de sesión)
	protected := api.Group("/", SessionMiddleware(deps.AuthUC))

	authProtected := protected.Group("/auth")
	authProtected.Post("/logout", authHandler.Logout)
	authProtected.Get("/me", authHandler.Me)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	protected.Post("/init-products", productHandler.Init)

	// Locations (protegido; escrituras solo admin)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Post("/", RequireAdmin(), locationHandler.Create)
	locations.Put("/:id", RequireAdmin(), locationHandler.Update)
	locations.Delete("/:id", RequireAdmin(), locationHandler.Delete)

	// Salesmen (protegido; escrituras solo admin)
	salesmen := protected.Group("/salesmen")
	salesmanHandler := NewSalesmanHandler(deps.SalesmanUC)
	salesmen.Get("/", salesmanHandler.List)
	salesmen.Post("/", RequireAdmin(), salesmanHandler.Create)
	salesmen.Put("/:id", RequireAdmin(), salesmanHandler.Update)
	salesmen.Delete("/:id", RequireAdmin(), salesmanHandler.Delete)

	// Sales (protegido, solo inserción y lectura)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.ListSales)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Create)

	// Users (administración)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", RequireAdmin(), userHandler.List)
	users.Post("/", RequireAdmin(), userHandler.Create)
	users.Put("/:id", RequireSelfOrAdmin(), userHandler.Update)
	users.Delete("/:id", RequireAdmin(), userHandler.Delete)
}
