package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/almacen-web/internal/application/usecase"
	"github.com/jhoicas/almacen-web/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName    string
	ProductUC  *usecase.ProductUseCase
	PurchaseUC *usecase.PurchaseUseCase
	Log        *logger.Logger
}

// NewApp construye la aplicación Fiber completa: motor de vistas embebidas,
// middlewares y rutas. main y los tests la usan por igual.
func NewApp(deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		Views:        newViewEngine(),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(MethodOverride())
	app.Use(RequestLogger(deps.Log))

	Router(app, deps)
	return app
}

// Router registra las rutas de la aplicación.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{"AppName": deps.AppName})
	})

	// Catálogo de productos
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products := app.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/new", productHandler.NewForm)
	products.Post("/", productHandler.Create)
	products.Get("/:id/edit", productHandler.EditForm)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Historial de compras
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.ProductUC, deps.Log)
	purchases := app.Group("/purchases")
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/new", purchaseHandler.NewForm)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Patch("/:id/cancel", purchaseHandler.Cancel)
}
