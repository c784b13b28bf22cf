package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-web/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para Purchase.
// GetByID devuelve (nil, nil) cuando la compra no existe.
type PurchaseRepository interface {
	// ListWithProducts devuelve las compras con su producto embebido.
	ListWithProducts(ctx context.Context) ([]entity.Purchase, error)
	GetByID(ctx context.Context, id int64) (*entity.Purchase, error)
	Create(ctx context.Context, purchase *entity.Purchase) error
	// MarkCancelled aplica la transición completed → cancelled.
	MarkCancelled(ctx context.Context, id int64, cancelledAt time.Time) error
}
