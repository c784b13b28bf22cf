package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jhoicas/almacen-web/internal/domain"
	"github.com/jhoicas/almacen-web/internal/domain/entity"
)

// ProductRepository implementa repository.ProductRepository sobre el data API.
// La colección remota es "products"; los filtros van en el endpoint
// (id=eq.<id>) al estilo PostgREST.
type ProductRepository struct {
	client *Client
}

// NewProductRepository construye el repositorio.
func NewProductRepository(client *Client) *ProductRepository {
	return &ProductRepository{client: client}
}

// List devuelve todos los productos.
func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	res := r.client.Request(ctx, http.MethodGet, "products?select=*", nil)
	if !res.Success {
		return nil, storeErr(res)
	}
	var products []entity.Product
	if err := json.Unmarshal(res.Body, &products); err != nil {
		return nil, fmt.Errorf("decodificar productos: %w", err)
	}
	return products, nil
}

// GetByID devuelve el producto o (nil, nil) si no existe.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	res := r.client.Request(ctx, http.MethodGet, fmt.Sprintf("products?id=eq.%d", id), nil)
	if !res.Success {
		return nil, storeErr(res)
	}
	var products []entity.Product
	if err := json.Unmarshal(res.Body, &products); err != nil {
		return nil, fmt.Errorf("decodificar producto: %w", err)
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

// Create inserta el producto. El ID lo asigna el data API.
func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	payload := map[string]any{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"stock":       product.Stock,
		"created_at":  product.CreatedAt,
	}
	res := r.client.Request(ctx, http.MethodPost, "products", payload)
	if !res.Success {
		return storeErr(res)
	}
	return nil
}

// Update reemplaza los campos editables del producto.
func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	payload := map[string]any{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"stock":       product.Stock,
		"updated_at":  product.UpdatedAt,
	}
	res := r.client.Request(ctx, http.MethodPatch, fmt.Sprintf("products?id=eq.%d", product.ID), payload)
	if !res.Success {
		return storeErr(res)
	}
	return nil
}

// UpdateStock escribe solo el campo stock (sync tras compra/cancelación).
func (r *ProductRepository) UpdateStock(ctx context.Context, id int64, stock int) error {
	res := r.client.Request(ctx, http.MethodPatch, fmt.Sprintf("products?id=eq.%d", id),
		map[string]any{"stock": stock})
	if !res.Success {
		return storeErr(res)
	}
	return nil
}

// Delete elimina el producto por ID.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res := r.client.Request(ctx, http.MethodDelete, fmt.Sprintf("products?id=eq.%d", id), nil)
	if !res.Success {
		return storeErr(res)
	}
	return nil
}

// storeErr convierte un Result fallido en un error de dominio con el detalle.
func storeErr(res Result) error {
	return fmt.Errorf("%w: %s", domain.ErrStoreUnavailable, res.ErrorMessage)
}
