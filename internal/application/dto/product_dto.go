package dto

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-web/internal/domain"
)

// ProductForm campos crudos del formulario de producto.
type ProductForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Price       string `form:"price"`
	Stock       string `form:"stock"`
}

// ProductInput entrada ya validada para crear o actualizar un producto.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
}

// ToInput valida y convierte el formulario. No se asume que los campos
// numéricos vengan bien formados.
func (f ProductForm) ToInput() (ProductInput, error) {
	if f.Name == "" {
		return ProductInput{}, domain.ErrInvalidInput
	}
	price, err := decimal.NewFromString(f.Price)
	if err != nil || price.IsNegative() {
		return ProductInput{}, domain.ErrInvalidInput
	}
	stock, err := strconv.Atoi(f.Stock)
	if err != nil || stock < 0 {
		return ProductInput{}, domain.ErrInvalidInput
	}
	return ProductInput{
		Name:        f.Name,
		Description: f.Description,
		Price:       price,
		Stock:       stock,
	}, nil
}
