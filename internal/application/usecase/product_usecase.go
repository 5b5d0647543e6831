package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmarulo/salesledger-api/internal/application/dto"
	"github.com/jmarulo/salesledger-api/internal/application/ports"
	"github.com/jmarulo/salesledger-api/internal/domain"
	"github.com/jmarulo/salesledger-api/internal/domain/entity"
	"github.com/jmarulo/salesledger-api/internal/domain/repository"
	"github.com/jmarulo/salesledger-api/pkg/logger"
)

// seedProducts catálogo inicial para POST /api/init-products (solo si la tabla está vacía).
var seedProducts = []entity.Product{
	{Name: "Mie Instan Goreng", Code: "MIG001", Price: decimal.NewFromInt(3500), Stock: 500, Unit: "pcs"},
	{Name: "Mie Instan Kuah", Code: "MIK001", Price: decimal.NewFromInt(3000), Stock: 450, Unit: "pcs"},
	{Name: "Kopi Sachet", Code: "KOP001", Price: decimal.NewFromInt(2000), Stock: 800, Unit: "pcs"},
	{Name: "Teh Botol", Code: "TEH001", Price: decimal.NewFromInt(5000), Stock: 300, Unit: "botol"},
	{Name: "Air Mineral 600ml", Code: "AIR001", Price: decimal.NewFromInt(3500), Stock: 600, Unit: "botol"},
	{Name: "Biskuit Kaleng", Code: "BIS001", Price: decimal.NewFromInt(15000), Stock: 150, Unit: "kaleng"},
	{Name: "Wafer Coklat", Code: "WAF001", Price: decimal.NewFromInt(8000), Stock: 200, Unit: "pcs"},
	{Name: "Keripik Kentang", Code: "KER001", Price: decimal.NewFromInt(10000), Stock: 180, Unit: "pcs"},
}

// ProductUseCase CRUD de catálogo de productos, con caché Redis del listado.
// El stock que se escribe aquí es el valor administrativo; los descuentos por
// venta ocurren solo en el caso de uso de ventas, bajo bloqueo de fila.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	cache       ports.Cache
	cacheTTL    time.Duration
	log         *logger.Logger
}

// NewProductUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewProductUseCase(productRepo repository.ProductRepository, cache ports.Cache, cacheTTL time.Duration, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, cache: cache, cacheTTL: cacheTTL, log: log}
}

// List retorna los productos ordenados por nombre, sirviendo desde caché
// cuando hay entrada vigente. Un fallo del caché degrada a la DB.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, ports.ProductsCacheKey)
		if err == nil {
			var out dto.ProductListResponse
			if json.Unmarshal([]byte(cached), &out) == nil {
				return &out, nil
			}
		} else if !errors.Is(err, ports.ErrCacheMiss) {
			uc.log.Warn().Err(err).Msg("leer caché de productos")
		}
	}

	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Products: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		out.Products = append(out.Products, toProductResponse(p))
	}

	if uc.cache != nil {
		if data, err := json.Marshal(out); err == nil {
			if err := uc.cache.Set(ctx, ports.ProductsCacheKey, string(data), uc.cacheTTL); err != nil {
				uc.log.Warn().Err(err).Msg("poblar caché de productos")
			}
		}
	}
	return out, nil
}

// Create valida y persiste un producto nuevo. El código se guarda en mayúsculas.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*entity.Product, error) {
	product, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	product.ID = uuid.New().String()
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return product, nil
}

// Update reemplaza todos los campos del producto, incluido el stock
// administrativo.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	product, err := productFromRequest(in)
	if err != nil {
		return err
	}
	product.ID = id
	if err := uc.productRepo.Update(product); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// Delete elimina el producto del catálogo.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.productRepo.Delete(id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// Init inserta el catálogo demo si la tabla está vacía. Retorna true si
// insertó, false si ya había productos.
func (uc *ProductUseCase) Init(ctx context.Context) (bool, error) {
	count, err := uc.productRepo.Count()
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	for _, seed := range seedProducts {
		p := seed
		p.ID = uuid.New().String()
		if err := uc.productRepo.Create(&p); err != nil {
			return false, err
		}
	}
	uc.invalidate(ctx)
	return true, nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, ports.ProductsCacheKey); err != nil {
		uc.log.Warn().Err(err).Msg("invalidar caché de productos")
	}
}

func productFromRequest(in dto.ProductRequest) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	unit := strings.TrimSpace(in.Unit)
	if name == "" || code == "" || unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	return &entity.Product{
		Name:       name,
		Code:       code,
		Price:      in.Price,
		Stock:      in.Stock,
		Unit:       unit,
		LocationID: strings.TrimSpace(in.LocationID),
	}, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Code:       p.Code,
		Price:      p.Price,
		Stock:      p.Stock,
		Unit:       p.Unit,
		LocationID: p.LocationID,
	}
}
