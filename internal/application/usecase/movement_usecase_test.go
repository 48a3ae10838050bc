package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgiraldo/stockia-api/internal/application/dto"
	"github.com/dgiraldo/stockia-api/internal/application/usecase"
	"github.com/dgiraldo/stockia-api/internal/domain"
	"github.com/dgiraldo/stockia-api/internal/domain/entity"
	"github.com/dgiraldo/stockia-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	byID map[string]*entity.Movement
}

func newFakeMovementRepo() *fakeMovementRepo {
	return &fakeMovementRepo{byID: map[string]*entity.Movement{}}
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	cp := *m
	r.byID[m.ID] = &cp
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	if m, ok := r.byID[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(_ context.Context, _ repository.MovementFilter, _, _ int) ([]*entity.Movement, error) {
	out := make([]*entity.Movement, 0, len(r.byID))
	for _, m := range r.byID {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Movement, error) {
	all, _ := r.List(ctx, repository.MovementFilter{}, limit, offset)
	out := all[:0]
	for _, m := range all {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	byID map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := r.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id string, stock int) error {
	if p, ok := r.byID[id]; ok {
		p.Stock = stock
	}
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Search(_ context.Context, _ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if p.LowStock() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type fakeNotifRepo struct {
	created []*entity.Notification
}

func (r *fakeNotifRepo) Create(_ context.Context, n *entity.Notification) error {
	r.created = append(r.created, n)
	return nil
}
func (r *fakeNotifRepo) GetByID(_ context.Context, _ string) (*entity.Notification, error) {
	return nil, nil
}
func (r *fakeNotifRepo) ListByUser(_ context.Context, _ string, _ bool, _, _ int) ([]*entity.Notification, error) {
	return nil, nil
}
func (r *fakeNotifRepo) MarkRead(_ context.Context, _ string) error    { return nil }
func (r *fakeNotifRepo) MarkAllRead(_ context.Context, _ string) error { return nil }
func (r *fakeNotifRepo) Delete(_ context.Context, _ string) error      { return nil }

type fakeSender struct {
	sent []*entity.Notification
}

func (s *fakeSender) Send(_ context.Context, n *entity.Notification) error {
	s.sent = append(s.sent, n)
	return nil
}

// fakeTxRunner pasa los repos tal cual: sin transacción real pero con la misma
// forma de ejecución.
type fakeTxRunner struct {
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
}

func (tx *fakeTxRunner) RunMovement(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(tx.movRepo, tx.productRepo)
}

type movementFixture struct {
	uc       *usecase.MovementUseCase
	movs     *fakeMovementRepo
	products *fakeProductRepo
	notifs   *fakeNotifRepo
	sender   *fakeSender
}

func newMovementFixture() *movementFixture {
	movs := newFakeMovementRepo()
	products := newFakeProductRepo()
	notifs := &fakeNotifRepo{}
	sender := &fakeSender{}
	tx := &fakeTxRunner{movRepo: movs, productRepo: products}
	return &movementFixture{
		uc:       usecase.NewMovementUseCase(tx, movs, notifs, sender),
		movs:     movs,
		products: products,
		notifs:   notifs,
		sender:   sender,
	}
}

func seedProduct(fx *movementFixture, id string, stock, minStock int) {
	fx.products.byID[id] = &entity.Product{ID: id, SKU: "SKU-" + id, Name: "Producto " + id, Stock: stock, MinStock: minStock}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_EntradaSumaStock(t *testing.T) {
	fx := newMovementFixture()
	seedProduct(fx, "p1", 10, 2)

	out, err := fx.uc.Register(context.Background(), "user-1", dto.CreateMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeIn, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, out.NewStock)
	assert.Equal(t, "user-1", out.UserID)

	stored, _ := fx.products.GetByID(context.Background(), "p1")
	assert.Equal(t, 15, stored.Stock)
}

func TestRegister_SalidaRestaStock(t *testing.T) {
	fx := newMovementFixture()
	seedProduct(fx, "p1", 10, 2)

	out, err := fx.uc.Register(context.Background(), "user-1", dto.CreateMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, out.NewStock)
}

func TestRegister_SalidaConStockInsuficiente(t *testing.T) {
	fx := newMovementFixture()
	seedProduct(fx, "p1", 3, 0)

	_, err := fx.uc.Register(context.Background(), "user-1", dto.CreateMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 4,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, _ := fx.products.GetByID(context.Background(), "p1")
	assert.Equal(t, 3, stored.Stock, "el stock no se toca cuando el movimiento se rechaza")
	assert.Empty(t, fx.movs.byID, "no queda movimiento registrado")
}

// Salida exacta al stock disponible es válida (deja el stock en cero).
func TestRegister_SalidaExacta(t *testing.T) {
	fx := newMovementFixture()
	seedProduct(fx, "p1", 4, 0)

	out, err := fx.uc.Register(context.Background(), "user-1", dto.CreateMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.NewStock)
}

// adjust fija el stock absoluto, sin importar el valor anterior.
func TestRegister_AjusteFijaStockAbsoluto(t *testing.T) {
	fx := newMovementFixture()
	seedProduct(fx, "p1", 10, 2)

	out, err := fx.uc.Register(context.Background(), "user-1", dto.CreateMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeAdjust, Quantity: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, out.NewStock)

	stored, _ := fx.products.GetByID(context.Background(), "p1")
	assert.Equal(t, 7, stored.Stock)
}

func TestRegister_ProductoInexistente(t *testing.T) {
	fx := newMovementFixture()
	_, err := fx.uc.Register(context.Background(), "user-1", dto.CreateMovementRequest{
		ProductID: "fantasma", Type: entity.MovementTypeIn, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_TipoDesconocido(t *testing.T) {
	fx := newMovementFixture()
	seedProduct(fx, "p1", 10, 2)

	_, err := fx.uc.Register(context.Background(), "user-1", dto.CreateMovementRequest{
		ProductID: "p1", Type: "transfer", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Al quedar el stock en o bajo el mínimo se emite la alerta de stock bajo.
func TestRegister_NotificaStockBajo(t *testing.T) {
	fx := newMovementFixture()
	seedProduct(fx, "p1", 10, 5)

	_, err := fx.uc.Register(context.Background(), "user-1", dto.CreateMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 5,
	})
	require.NoError(t, err)

	require.Len(t, fx.notifs.created, 1)
	assert.Equal(t, entity.NotificationTypeLowStock, fx.notifs.created[0].Type)
	assert.Equal(t, "user-1", fx.notifs.created[0].UserID)
	require.Len(t, fx.sender.sent, 1)
}

func TestRegister_SinAlertaSobreElMinimo(t *testing.T) {
	fx := newMovementFixture()
	seedProduct(fx, "p1", 10, 2)

	_, err := fx.uc.Register(context.Background(), "user-1", dto.CreateMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Empty(t, fx.notifs.created)
}
