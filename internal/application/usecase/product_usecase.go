package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-web/internal/application/dto"
	"github.com/jhoicas/almacen-web/internal/domain/entity"
	"github.com/jhoicas/almacen-web/internal/domain/repository"
)

// CatalogCache puerto del cache de lectura del catálogo. Puede ser nil
// (cache deshabilitado); la implementación concreta vive en infrastructure/cache.
type CatalogCache interface {
	GetList(ctx context.Context) ([]entity.Product, bool)
	SetList(ctx context.Context, products []entity.Product)
	Invalidate(ctx context.Context)
}

// ProductUseCase casos de uso CRUD para el catálogo de productos.
// El stock se muta además desde PurchaseUseCase (compras y cancelaciones).
type ProductUseCase struct {
	repo  repository.ProductRepository
	cache CatalogCache
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, cache CatalogCache) *ProductUseCase {
	return &ProductUseCase{repo: repo, cache: cache}
}

// List devuelve todos los productos, pasando por el cache si está configurado.
func (uc *ProductUseCase) List(ctx context.Context) ([]entity.Product, error) {
	if uc.cache != nil {
		if products, ok := uc.cache.GetList(ctx); ok {
			return products, nil
		}
	}
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.SetList(ctx, products)
	}
	return products, nil
}

// GetByID devuelve el producto o (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return uc.repo.GetByID(ctx, id)
}

// Create crea un producto nuevo con created_at al momento actual.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductInput) error {
	product := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// Update actualiza el producto con updated_at al momento actual.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductInput) error {
	product := &entity.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		UpdatedAt:   time.Now(),
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// Delete elimina el producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}
}
