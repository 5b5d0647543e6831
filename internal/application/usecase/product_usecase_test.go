package usecase_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmarulo/salesledger-api/internal/application/dto"
	"github.com/jmarulo/salesledger-api/internal/application/ports"
	"github.com/jmarulo/salesledger-api/internal/application/usecase"
	"github.com/jmarulo/salesledger-api/internal/domain"
	"github.com/jmarulo/salesledger-api/internal/domain/entity"
	"github.com/jmarulo/salesledger-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	listCall int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.Code == p.Code {
			return domain.ErrDuplicateCode
		}
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *fakeProductRepo) DecrementStock(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock -= quantity
	return nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List() ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCall++
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProductRepo) Count() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.products), nil
}

// fakeCache caché en memoria sin expiración (el TTL no aplica en tests).
type fakeCache struct {
	mu      sync.Mutex
	data    map[string]string
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", ports.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.deletes++
	return nil
}

var _ ports.Cache = (*fakeCache)(nil)

func newProductUC(repo *fakeProductRepo, cache ports.Cache) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(repo, cache, time.Minute, logger.Nop())
}

func validProduct() dto.ProductRequest {
	return dto.ProductRequest{
		Name:  "Mie Instan Goreng",
		Code:  "mig001",
		Price: decimal.NewFromInt(3500),
		Stock: 500,
		Unit:  "pcs",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD
// ──────────────────────────────────────────────────────────────────────────────

// El código se guarda en mayúsculas y el producto recibe un ID.
func TestProductCreate_NormalizaCodigo(t *testing.T) {
	repo := newFakeProductRepo()
	uc := newProductUC(repo, nil)

	p, err := uc.Create(context.Background(), validProduct())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "MIG001", p.Code)
}

// Dos productos con el mismo código fallan con ErrDuplicateCode.
func TestProductCreate_CodigoDuplicado(t *testing.T) {
	repo := newFakeProductRepo()
	uc := newProductUC(repo, nil)

	_, err := uc.Create(context.Background(), validProduct())
	require.NoError(t, err)

	in := validProduct()
	in.Name = "Otro producto"
	_, err = uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

// Entradas incompletas o negativas se rechazan.
func TestProductCreate_Validacion(t *testing.T) {
	repo := newFakeProductRepo()
	uc := newProductUC(repo, nil)

	bad := []func(*dto.ProductRequest){
		func(in *dto.ProductRequest) { in.Name = "  " },
		func(in *dto.ProductRequest) { in.Code = "" },
		func(in *dto.ProductRequest) { in.Unit = "" },
		func(in *dto.ProductRequest) { in.Price = decimal.NewFromInt(-1) },
		func(in *dto.ProductRequest) { in.Stock = -5 },
	}
	for _, mutate := range bad {
		in := validProduct()
		mutate(&in)
		_, err := uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Caché del listado
// ──────────────────────────────────────────────────────────────────────────────

// El primer List va a la DB y puebla el caché; el segundo sirve desde caché.
func TestProductList_UsaCache(t *testing.T) {
	repo := newFakeProductRepo()
	cache := newFakeCache()
	uc := newProductUC(repo, cache)

	_, err := uc.Create(context.Background(), validProduct())
	require.NoError(t, err)

	first, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Products, 1)
	assert.Equal(t, 1, repo.listCall)

	second, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, second.Products, 1)
	assert.Equal(t, first.Products[0].Code, second.Products[0].Code)
	assert.True(t, first.Products[0].Price.Equal(second.Products[0].Price))
	assert.Equal(t, 1, repo.listCall, "la segunda lectura no debe tocar la DB")
}

// Crear, actualizar y eliminar invalidan la entrada cacheada.
func TestProductCRUD_InvalidaCache(t *testing.T) {
	repo := newFakeProductRepo()
	cache := newFakeCache()
	uc := newProductUC(repo, cache)

	p, err := uc.Create(context.Background(), validProduct())
	require.NoError(t, err)

	_, err = uc.List(context.Background())
	require.NoError(t, err)

	in := validProduct()
	in.Stock = 400
	require.NoError(t, uc.Update(context.Background(), p.ID, in))
	_, cacheErr := cache.Get(context.Background(), ports.ProductsCacheKey)
	assert.ErrorIs(t, cacheErr, ports.ErrCacheMiss, "Update debe invalidar el listado")

	out, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 400, out.Products[0].Stock)

	require.NoError(t, uc.Delete(context.Background(), p.ID))
	_, cacheErr = cache.Get(context.Background(), ports.ProductsCacheKey)
	assert.ErrorIs(t, cacheErr, ports.ErrCacheMiss, "Delete debe invalidar el listado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Init
// ──────────────────────────────────────────────────────────────────────────────

// Con la tabla vacía Init carga el catálogo demo; con datos, es un no-op.
func TestProductInit_SoloConTablaVacia(t *testing.T) {
	repo := newFakeProductRepo()
	uc := newProductUC(repo, nil)

	seeded, err := uc.Init(context.Background())
	require.NoError(t, err)
	assert.True(t, seeded)

	n, _ := repo.Count()
	assert.Equal(t, 8, n)

	seeded, err = uc.Init(context.Background())
	require.NoError(t, err)
	assert.False(t, seeded, "con productos existentes no debe reinsertar")
	n, _ = repo.Count()
	assert.Equal(t, 8, n)
}
