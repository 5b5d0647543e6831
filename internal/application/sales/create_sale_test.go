package sales_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmarulo/salesledger-api/internal/application/dto"
	"github.com/jmarulo/salesledger-api/internal/application/sales"
	"github.com/jmarulo/salesledger-api/internal/domain"
	"github.com/jmarulo/salesledger-api/internal/domain/entity"
	"github.com/jmarulo/salesledger-api/internal/domain/repository"
	"github.com/jmarulo/salesledger-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de TxRunner con semántica transaccional
// ──────────────────────────────────────────────────────────────────────────────

// fakeStore estado compartido entre transacciones. El mutex cumple el papel
// del bloqueo de fila: una transacción lo toma al entrar y lo suelta al salir,
// de modo que dos ventas concurrentes se serializan como con SELECT FOR UPDATE.
type fakeStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	sales    []*entity.Sale
	items    []*entity.SaleItem
	nextItem int64
}

func newFakeStore(products ...*entity.Product) *fakeStore {
	s := &fakeStore{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

func (s *fakeStore) stock(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

// fakeTx copia de trabajo de una transacción: los cambios se acumulan en
// staging y solo se aplican al store en el commit.
type fakeTx struct {
	store    *fakeStore
	products map[string]*entity.Product
	sales    []*entity.Sale
	items    []*entity.SaleItem
}

func (tx *fakeTx) GetForUpdate(id string) (*entity.Product, error) {
	if p, ok := tx.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	p, ok := tx.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (tx *fakeTx) DecrementStock(id string, quantity int) error {
	p, ok := tx.products[id]
	if !ok {
		orig, exists := tx.store.products[id]
		if !exists {
			return domain.ErrProductNotFound
		}
		cp := *orig
		p = &cp
		tx.products[id] = p
	}
	p.Stock -= quantity
	return nil
}

func (tx *fakeTx) GetByID(id string) (*entity.Product, error) { return tx.GetForUpdate(id) }
func (tx *fakeTx) Create(p *entity.Product) error             { return nil }
func (tx *fakeTx) Update(p *entity.Product) error             { return nil }
func (tx *fakeTx) Delete(id string) error                     { return nil }
func (tx *fakeTx) List() ([]*entity.Product, error)           { return nil, nil }
func (tx *fakeTx) Count() (int, error)                        { return 0, nil }

var _ repository.ProductRepository = (*fakeTx)(nil)

// fakeSaleTx repositorio de ventas atado a la misma transacción.
type fakeSaleTx struct {
	tx *fakeTx
}

func (r *fakeSaleTx) Create(sale *entity.Sale) error {
	cp := *sale
	r.tx.sales = append(r.tx.sales, &cp)
	return nil
}

func (r *fakeSaleTx) CreateItem(item *entity.SaleItem) error {
	r.tx.store.nextItem++
	item.ID = r.tx.store.nextItem
	cp := *item
	r.tx.items = append(r.tx.items, &cp)
	return nil
}

func (r *fakeSaleTx) List() ([]*entity.Sale, error) { return nil, nil }

var _ repository.SaleRepository = (*fakeSaleTx)(nil)

// fakeTxRunner serializa transacciones sobre el store y aplica los cambios
// solo si fn retorna nil; cualquier error descarta el staging completo.
type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.SaleRepository) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx := &fakeTx{store: r.store, products: make(map[string]*entity.Product)}
	if err := fn(tx, &fakeSaleTx{tx: tx}); err != nil {
		return err
	}
	// Commit: volcar staging al store.
	for id, p := range tx.products {
		r.store.products[id] = p
	}
	r.store.sales = append(r.store.sales, tx.sales...)
	r.store.items = append(r.store.items, tx.items...)
	return nil
}

var _ sales.TxRunner = (*fakeTxRunner)(nil)

func product(id, name, code string, price int64, stock int) *entity.Product {
	return &entity.Product{
		ID:    id,
		Name:  name,
		Code:  code,
		Price: decimal.NewFromInt(price),
		Stock: stock,
		Unit:  "pcs",
	}
}

func newSaleUC(store *fakeStore) *sales.CreateSaleUseCase {
	return sales.NewCreateSaleUseCase(&fakeTxRunner{store: store}, nil, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Camino feliz
// ──────────────────────────────────────────────────────────────────────────────

// Dos líneas: el total es la suma de precio x cantidad y el stock queda descontado.
func TestCreateSale_TotalesYDescuento(t *testing.T) {
	store := newFakeStore(
		product("p1", "Mie Instan Goreng", "MIG001", 3500, 100),
		product("p2", "Teh Botol", "TB001", 2000, 50),
	)
	uc := newSaleUC(store)

	sale, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		SalesmanName: "Budi",
		CustomerName: "Toko Jaya",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(9000)), "total = 2*3500 + 1*2000")
	assert.Equal(t, 98, store.stock("p1"))
	assert.Equal(t, 49, store.stock("p2"))

	require.Len(t, sale.Items, 2)
	first := sale.Items[0]
	assert.Equal(t, "Mie Instan Goreng", first.ProductName, "la línea congela el nombre del producto")
	assert.Equal(t, "MIG001", first.ProductCode)
	assert.True(t, first.Price.Equal(decimal.NewFromInt(3500)))
	assert.True(t, first.Total.Equal(decimal.NewFromInt(7000)))
	require.Len(t, store.sales, 1)
	require.Len(t, store.items, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores de negocio y atomicidad
// ──────────────────────────────────────────────────────────────────────────────

// Un producto inexistente en la segunda línea revierte también la primera.
func TestCreateSale_ProductoInexistenteRevierteTodo(t *testing.T) {
	store := newFakeStore(product("p1", "Mie Instan Goreng", "MIG001", 3500, 100))
	uc := newSaleUC(store)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		SalesmanName: "Budi",
		CustomerName: "Toko Jaya",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 5},
			{ProductID: "no-existe", Quantity: 1},
		},
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Contains(t, err.Error(), "no-existe", "el error identifica el producto ofensor")

	assert.Equal(t, 100, store.stock("p1"), "el descuento de la primera línea debe revertirse")
	assert.Empty(t, store.sales)
	assert.Empty(t, store.items)
}

// Stock insuficiente falla con el código del producto y sin efectos.
func TestCreateSale_StockInsuficiente(t *testing.T) {
	store := newFakeStore(product("p1", "Mie Instan Goreng", "MIG001", 3500, 3))
	uc := newSaleUC(store)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		SalesmanName: "Budi",
		CustomerName: "Toko Jaya",
		Items:        []dto.SaleItemRequest{{ProductID: "p1", Quantity: 4}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "MIG001")
	assert.Equal(t, 3, store.stock("p1"))
}

// La misma línea repetida descuenta acumulado: la segunda aparición ve el
// stock ya descontado por la primera.
func TestCreateSale_LineaRepetidaAcumula(t *testing.T) {
	store := newFakeStore(product("p1", "Mie Instan Goreng", "MIG001", 3500, 5))
	uc := newSaleUC(store)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		SalesmanName: "Budi",
		CustomerName: "Toko Jaya",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p1", Quantity: 3},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, store.stock("p1"))
}

// La validación rechaza la entrada antes de abrir transacción.
func TestCreateSale_Validacion(t *testing.T) {
	store := newFakeStore(product("p1", "Mie Instan Goreng", "MIG001", 3500, 10))
	uc := newSaleUC(store)

	cases := []dto.CreateSaleRequest{
		{SalesmanName: "", CustomerName: "Toko", Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}}},
		{SalesmanName: "Budi", CustomerName: "  ", Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}}},
		{SalesmanName: "Budi", CustomerName: "Toko", Items: nil},
		{SalesmanName: "Budi", CustomerName: "Toko", Items: []dto.SaleItemRequest{{ProductID: "", Quantity: 1}}},
		{SalesmanName: "Budi", CustomerName: "Toko", Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 0}}},
		{SalesmanName: "Budi", CustomerName: "Toko", Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: -2}}},
	}
	for _, in := range cases {
		_, err := uc.CreateSale(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, 10, store.stock("p1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Dos ventas simultáneas por todo el stock: exactamente una gana, la otra ve
// el stock ya descontado y falla, y el stock nunca queda negativo.
func TestCreateSale_VentasConcurrentesSerializadas(t *testing.T) {
	store := newFakeStore(product("p1", "Mie Instan Goreng", "MIG001", 3500, 10))
	uc := newSaleUC(store)

	in := dto.CreateSaleRequest{
		SalesmanName: "Budi",
		CustomerName: "Toko Jaya",
		Items:        []dto.SaleItemRequest{{ProductID: "p1", Quantity: 10}},
	}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateSale(context.Background(), in)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var oks, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			oks++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, oks, "exactamente una venta debe confirmarse")
	assert.Equal(t, 1, insufficient, "la perdedora debe ver stock insuficiente")
	assert.Equal(t, 0, store.stock("p1"))
	assert.Len(t, store.sales, 1)
}
