package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss lo retorna Get cuando la clave no existe en el caché.
var ErrCacheMiss = errors.New("cache: clave no encontrada")

// ProductsCacheKey clave del listado de productos en caché. La invalidan el
// CRUD de productos y el commit de ventas (el stock cambia).
const ProductsCacheKey = "products:all"

// Cache puerto mínimo de caché de lecturas (implementado por Redis en infraestructura).
// Un fallo del caché nunca debe tumbar la petición: los llamadores degradan a DB.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}
