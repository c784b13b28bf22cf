package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-web/internal/application/dto"
	"github.com/jhoicas/almacen-web/internal/application/usecase"
	"github.com/jhoicas/almacen-web/internal/domain/entity"
	"github.com/jhoicas/almacen-web/pkg/logger"
)

// ProductHandler maneja las páginas y acciones del catálogo de productos.
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// List GET /products — listado del catálogo. Si el data API falla se
// renderiza la página con la lista vacía.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.uc.List(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("listar productos")
		products = []entity.Product{}
	}
	return c.Render("products", fiber.Map{"Products": products})
}

// NewForm GET /products/new — formulario de alta.
func (h *ProductHandler) NewForm(c *fiber.Ctx) error {
	return c.Render("product_form", fiber.Map{})
}

// Create POST /products — alta de producto. En fallo se re-renderiza el
// formulario con el error; no persiste estado parcial.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var form dto.ProductForm
	if err := c.BodyParser(&form); err != nil {
		return c.Render("product_form", fiber.Map{"Error": "Formulario inválido"})
	}
	in, err := form.ToInput()
	if err != nil {
		return c.Render("product_form", fiber.Map{"Error": "Datos del producto inválidos"})
	}
	if err := h.uc.Create(c.Context(), in); err != nil {
		h.log.Error().Err(err).Msg("crear producto")
		return c.Render("product_form", fiber.Map{"Error": "No se pudo agregar el producto"})
	}
	return c.Redirect("/products", fiber.StatusSeeOther)
}

// EditForm GET /products/:id/edit — formulario de edición. Si el producto
// no existe se redirige al listado (no es un error duro).
func (h *ProductHandler) EditForm(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Redirect("/products", fiber.StatusSeeOther)
	}
	product, err := h.uc.GetByID(c.Context(), int64(id))
	if err != nil || product == nil {
		return c.Redirect("/products", fiber.StatusSeeOther)
	}
	return c.Render("product_edit", fiber.Map{"Product": product})
}

// Update PATCH /products/:id — edición. En fallo se re-renderiza el
// formulario conservando el ID enviado.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Redirect("/products", fiber.StatusSeeOther)
	}
	var form dto.ProductForm
	if err := c.BodyParser(&form); err != nil {
		return c.Render("product_edit", fiber.Map{
			"Error":   "Formulario inválido",
			"Product": &entity.Product{ID: int64(id)},
		})
	}
	in, err := form.ToInput()
	if err != nil {
		return c.Render("product_edit", fiber.Map{
			"Error":   "Datos del producto inválidos",
			"Product": &entity.Product{ID: int64(id)},
		})
	}
	if err := h.uc.Update(c.Context(), int64(id), in); err != nil {
		h.log.Error().Err(err).Int("id", id).Msg("actualizar producto")
		return c.Render("product_edit", fiber.Map{
			"Error":   "No se pudo actualizar el producto",
			"Product": &entity.Product{ID: int64(id)},
		})
	}
	return c.Redirect("/products", fiber.StatusSeeOther)
}

// Delete DELETE /products/:id — respuesta JSON {success}.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.JSON(fiber.Map{"success": false, "error": "ID inválido"})
	}
	if err := h.uc.Delete(c.Context(), int64(id)); err != nil {
		h.log.Error().Err(err).Int("id", id).Msg("eliminar producto")
		return c.JSON(fiber.Map{"success": false, "error": "No se pudo eliminar el producto"})
	}
	return c.JSON(fiber.Map{"success": true})
}
