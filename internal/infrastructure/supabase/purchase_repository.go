package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jhoicas/almacen-web/internal/domain/entity"
)

// PurchaseRepository implementa repository.PurchaseRepository sobre el data API.
type PurchaseRepository struct {
	client *Client
}

// NewPurchaseRepository construye el repositorio.
func NewPurchaseRepository(client *Client) *PurchaseRepository {
	return &PurchaseRepository{client: client}
}

// ListWithProducts devuelve las compras con el producto embebido
// (select=*,products(*) resuelve la referencia en el data API).
func (r *PurchaseRepository) ListWithProducts(ctx context.Context) ([]entity.Purchase, error) {
	res := r.client.Request(ctx, http.MethodGet, "purchases?select=*,products(*)", nil)
	if !res.Success {
		return nil, storeErr(res)
	}
	var purchases []entity.Purchase
	if err := json.Unmarshal(res.Body, &purchases); err != nil {
		return nil, fmt.Errorf("decodificar compras: %w", err)
	}
	return purchases, nil
}

// GetByID devuelve la compra o (nil, nil) si no existe.
func (r *PurchaseRepository) GetByID(ctx context.Context, id int64) (*entity.Purchase, error) {
	res := r.client.Request(ctx, http.MethodGet, fmt.Sprintf("purchases?id=eq.%d", id), nil)
	if !res.Success {
		return nil, storeErr(res)
	}
	var purchases []entity.Purchase
	if err := json.Unmarshal(res.Body, &purchases); err != nil {
		return nil, fmt.Errorf("decodificar compra: %w", err)
	}
	if len(purchases) == 0 {
		return nil, nil
	}
	return &purchases[0], nil
}

// Create inserta la compra. El ID lo asigna el data API.
func (r *PurchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	payload := map[string]any{
		"product_id":    purchase.ProductID,
		"quantity":      purchase.Quantity,
		"total_price":   purchase.TotalPrice,
		"purchase_date": purchase.PurchaseDate,
		"status":        purchase.Status,
	}
	res := r.client.Request(ctx, http.MethodPost, "purchases", payload)
	if !res.Success {
		return storeErr(res)
	}
	return nil
}

// MarkCancelled aplica la transición completed → cancelled sobre el registro.
func (r *PurchaseRepository) MarkCancelled(ctx context.Context, id int64, cancelledAt time.Time) error {
	payload := map[string]any{
		"status":       entity.PurchaseStatusCancelled,
		"cancelled_at": cancelledAt,
	}
	res := r.client.Request(ctx, http.MethodPatch, fmt.Sprintf("purchases?id=eq.%d", id), payload)
	if !res.Success {
		return storeErr(res)
	}
	return nil
}
