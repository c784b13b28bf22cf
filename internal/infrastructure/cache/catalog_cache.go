package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/almacen-web/internal/domain/entity"
)

const listKey = "catalog:products"

// CatalogCache cache de lectura para el listado de productos en Redis.
// Es opcional: si Redis no está configurado la aplicación trabaja sin cache.
// Cualquier error de Redis se trata como cache miss; la fuente de verdad
// sigue siendo el data API remoto.
type CatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New construye el cache. ttl 0 usa 30 s.
func New(addr string, ttl time.Duration) *CatalogCache {
	if ttl == 0 {
		ttl = 30 * time.Second
	}
	return &CatalogCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

// GetList devuelve la lista cacheada y true, o (nil, false) en miss o error.
func (c *CatalogCache) GetList(ctx context.Context) ([]entity.Product, bool) {
	raw, err := c.rdb.Get(ctx, listKey).Bytes()
	if err != nil {
		return nil, false
	}
	var products []entity.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetList guarda la lista con TTL. Errores se ignoran (best effort).
func (c *CatalogCache) SetList(ctx context.Context, products []entity.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, listKey, raw, c.ttl)
}

// Invalidate borra la entrada; se llama tras cualquier escritura al catálogo
// o mutación de stock.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	c.rdb.Del(ctx, listKey)
}

// Close cierra la conexión con Redis.
func (c *CatalogCache) Close() error {
	return c.rdb.Close()
}
