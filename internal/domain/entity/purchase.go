package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra. La única transición válida es completed → cancelled.
const (
	PurchaseStatusCompleted = "completed"
	PurchaseStatusCancelled = "cancelled"
)

// Purchase representa una venta registrada contra un producto.
// TotalPrice es un snapshot de price × quantity al momento de la compra;
// no se recalcula al cancelar.
type Purchase struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	PurchaseDate time.Time       `json:"purchase_date"`
	Status       string          `json:"status"`
	CancelledAt  *time.Time      `json:"cancelled_at"`

	// Product viene embebido cuando se consulta con select=*,products(*).
	Product *Product `json:"products,omitempty"`
}

// Cancellable indica si la compra admite la transición a cancelled.
func (p *Purchase) Cancellable() bool {
	return p.Status == PurchaseStatusCompleted
}
