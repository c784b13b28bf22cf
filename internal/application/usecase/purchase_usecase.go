package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-web/internal/application/dto"
	"github.com/jhoicas/almacen-web/internal/domain"
	"github.com/jhoicas/almacen-web/internal/domain/entity"
	"github.com/jhoicas/almacen-web/internal/domain/repository"
	"github.com/jhoicas/almacen-web/pkg/logger"
)

// PurchaseUseCase orquesta el flujo de compra: validación de stock, alta de
// la compra, descuento de stock, y la cancelación con restauración de stock.
//
// La verificación de stock y su descuento son dos viajes independientes al
// data API, sin transacción ni token de concurrencia: dos compras simultáneas
// sobre el mismo producto pueden pasar ambas la verificación antes de que
// alguna descuente (posible sobreventa). Se mantiene ese comportamiento.
type PurchaseUseCase struct {
	purchases repository.PurchaseRepository
	products  repository.ProductRepository
	cache     CatalogCache
	log       *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso. cache puede ser nil.
func NewPurchaseUseCase(
	purchases repository.PurchaseRepository,
	products repository.ProductRepository,
	cache CatalogCache,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		purchases: purchases,
		products:  products,
		cache:     cache,
		log:       log,
	}
}

// List devuelve las compras con su producto embebido.
func (uc *PurchaseUseCase) List(ctx context.Context) ([]entity.Purchase, error) {
	return uc.purchases.ListWithProducts(ctx)
}

// Create registra una compra contra un producto:
//  1. valida que la cantidad sea positiva,
//  2. verifica producto existente y stock suficiente,
//  3. crea la compra con status=completed y total_price = precio × cantidad
//     (snapshot al momento de la compra),
//  4. descuenta el stock del producto.
//
// Si el alta de la compra falla no se muta stock. Si falla el descuento de
// stock la compra ya quedó registrada: se loguea la inconsistencia pero no se
// revierte ni se reporta al caller (gap conocido del sync de stock).
func (uc *PurchaseUseCase) Create(ctx context.Context, in dto.PurchaseInput) error {
	if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}

	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil || product == nil || product.Stock < in.Quantity {
		return domain.ErrInsufficientStock
	}

	purchase := &entity.Purchase{
		ProductID:    product.ID,
		Quantity:     in.Quantity,
		TotalPrice:   product.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
		PurchaseDate: time.Now(),
		Status:       entity.PurchaseStatusCompleted,
	}
	if err := uc.purchases.Create(ctx, purchase); err != nil {
		return domain.ErrPurchaseFailed
	}

	uc.syncStock(ctx, product.ID, product.Stock-in.Quantity)
	return nil
}

// Cancel cancela una compra completada:
//  1. verifica que exista y que status sea completed (transición única
//     completed → cancelled, sin vuelta atrás),
//  2. marca la compra como cancelled con cancelled_at,
//  3. restaura el stock del producto referenciado.
//
// La cancelación se considera exitosa en cuanto persiste la transición de
// estado; si el producto ya no existe o la restauración de stock falla, la
// compra queda cancelada igual (mismo gap del sync de stock que en Create).
func (uc *PurchaseUseCase) Cancel(ctx context.Context, id int64) error {
	purchase, err := uc.purchases.GetByID(ctx, id)
	if err != nil || purchase == nil || !purchase.Cancellable() {
		return domain.ErrNotCancellable
	}

	if err := uc.purchases.MarkCancelled(ctx, purchase.ID, time.Now()); err != nil {
		return domain.ErrCancellationFailed
	}

	product, err := uc.products.GetByID(ctx, purchase.ProductID)
	if err != nil || product == nil {
		uc.log.Warn().
			Int64("purchase_id", purchase.ID).
			Int64("product_id", purchase.ProductID).
			Msg("producto no encontrado al restaurar stock; se omite la restauración")
		return nil
	}

	uc.syncStock(ctx, product.ID, product.Stock+purchase.Quantity)
	return nil
}

// syncStock escribe el nuevo stock sin verificar el resultado más allá del log.
func (uc *PurchaseUseCase) syncStock(ctx context.Context, productID int64, newStock int) {
	if err := uc.products.UpdateStock(ctx, productID, newStock); err != nil {
		uc.log.Warn().
			Err(err).
			Int64("product_id", productID).
			Int("new_stock", newStock).
			Msg("sync de stock fallido; el stock del producto quedó desactualizado")
		return
	}
	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}
}
