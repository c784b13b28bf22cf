package dto

import (
	"strconv"

	"github.com/jhoicas/almacen-web/internal/domain"
)

// PurchaseForm campos crudos del formulario de compra.
type PurchaseForm struct {
	ProductID string `form:"product_id"`
	Quantity  string `form:"quantity"`
}

// PurchaseInput entrada ya validada para registrar una compra.
type PurchaseInput struct {
	ProductID int64
	Quantity  int
}

// ToInput valida y convierte el formulario. La positividad de la cantidad
// la valida el caso de uso; aquí solo se exige que sean números.
func (f PurchaseForm) ToInput() (PurchaseInput, error) {
	productID, err := strconv.ParseInt(f.ProductID, 10, 64)
	if err != nil {
		return PurchaseInput{}, domain.ErrInvalidInput
	}
	quantity, err := strconv.Atoi(f.Quantity)
	if err != nil {
		return PurchaseInput{}, domain.ErrInvalidInput
	}
	return PurchaseInput{ProductID: productID, Quantity: quantity}, nil
}
