package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-web/internal/application/dto"
	"github.com/jhoicas/almacen-web/internal/application/usecase"
	"github.com/jhoicas/almacen-web/internal/domain"
	"github.com/jhoicas/almacen-web/internal/domain/entity"
	"github.com/jhoicas/almacen-web/pkg/logger"
)

// PurchaseHandler maneja el historial de compras, el alta y la cancelación.
// Necesita el caso de uso de catálogo para repoblar el formulario de compra.
type PurchaseHandler struct {
	uc        *usecase.PurchaseUseCase
	catalogUC *usecase.ProductUseCase
	log       *logger.Logger
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *usecase.PurchaseUseCase, catalogUC *usecase.ProductUseCase, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, catalogUC: catalogUC, log: log}
}

// List GET /purchases — historial con el producto de cada compra.
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	purchases, err := h.uc.List(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("listar compras")
		purchases = []entity.Purchase{}
	}
	return c.Render("purchases", fiber.Map{"Purchases": purchases})
}

// NewForm GET /purchases/new — formulario de compra con los productos disponibles.
func (h *PurchaseHandler) NewForm(c *fiber.Ctx) error {
	return c.Render("purchase_form", fiber.Map{"Products": h.products(c)})
}

// Create POST /purchases — registra la compra. En fallo se re-renderiza el
// formulario con el error y el listado de productos actualizado.
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var form dto.PurchaseForm
	if err := c.BodyParser(&form); err != nil {
		return h.renderFormError(c, "Formulario inválido")
	}
	in, err := form.ToInput()
	if err != nil {
		return h.renderFormError(c, "Datos de la compra inválidos")
	}
	if err := h.uc.Create(c.Context(), in); err != nil {
		return h.renderFormError(c, createErrorMessage(err))
	}
	return c.Redirect("/purchases", fiber.StatusSeeOther)
}

// Cancel PATCH /purchases/:id/cancel — respuesta JSON {success}.
// La cancelación es exitosa en cuanto persiste el cambio de estado,
// independientemente de la restauración de stock.
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.JSON(fiber.Map{"success": false, "error": "ID inválido"})
	}
	if err := h.uc.Cancel(c.Context(), int64(id)); err != nil {
		if errors.Is(err, domain.ErrNotCancellable) {
			return c.JSON(fiber.Map{"success": false, "error": "La compra no se puede cancelar"})
		}
		h.log.Error().Err(err).Int("id", id).Msg("cancelar compra")
		return c.JSON(fiber.Map{"success": false, "error": "No se pudo cancelar la compra"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *PurchaseHandler) renderFormError(c *fiber.Ctx, msg string) error {
	return c.Render("purchase_form", fiber.Map{
		"Error":    msg,
		"Products": h.products(c),
	})
}

// products devuelve el catálogo para el formulario; en fallo, lista vacía.
func (h *PurchaseHandler) products(c *fiber.Ctx) []entity.Product {
	products, err := h.catalogUC.List(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("listar productos para formulario de compra")
		return []entity.Product{}
	}
	return products
}

func createErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "La cantidad debe ser mayor que cero"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "Stock insuficiente o producto no encontrado"
	default:
		return "No se pudo registrar la compra"
	}
}
