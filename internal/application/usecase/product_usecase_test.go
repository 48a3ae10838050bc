package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgiraldo/stockia-api/internal/application/dto"
	"github.com/dgiraldo/stockia-api/internal/application/usecase"
	"github.com/dgiraldo/stockia-api/internal/domain"
	"github.com/dgiraldo/stockia-api/internal/domain/entity"
)

// searchSpyRepo captura la query normalizada que llega al puerto de búsqueda.
type searchSpyRepo struct {
	fakeProductRepo
	lastQuery string
}

func (r *searchSpyRepo) Search(_ context.Context, normalizedQuery string, _, _ int) ([]*entity.Product, error) {
	r.lastQuery = normalizedQuery
	return nil, nil
}

// La búsqueda normaliza acentos y mayúsculas antes de llegar al repositorio.
func TestProductList_NormalizaLaBusqueda(t *testing.T) {
	spy := &searchSpyRepo{fakeProductRepo: *newFakeProductRepo()}
	uc := usecase.NewProductUseCase(spy)

	cases := []struct {
		query string
		want  string
	}{
		{"Café", "cafe"},
		{"  AZÚCAR  ", "azucar"},
		{"ñandú", "nandu"},
		{"tornillo", "tornillo"},
	}
	for _, tc := range cases {
		_, err := uc.List(context.Background(), tc.query, 10, 0)
		require.NoError(t, err)
		assert.Equalf(t, tc.want, spy.lastQuery, "query %q", tc.query)
	}
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{
		SKU: "SKU-1", Name: "Martillo", Price: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateProductRequest{
		SKU: "SKU-1", Name: "Otro martillo", Price: decimal.NewFromInt(90),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUpdate_NoTocaElStock(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		SKU: "SKU-2", Name: "Destornillador", Price: decimal.NewFromInt(50), Stock: 8,
	})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: "Destornillador plano"})
	require.NoError(t, err)
	assert.Equal(t, "Destornillador plano", updated.Name)
	assert.Equal(t, 8, updated.Stock, "el stock solo cambia vía movimientos")
}

func TestProductListLowStock(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	repo.byID["bajo"] = &entity.Product{ID: "bajo", SKU: "A", Name: "Bajo", Stock: 2, MinStock: 5}
	repo.byID["ok"] = &entity.Product{ID: "ok", SKU: "B", Name: "OK", Stock: 9, MinStock: 5}

	items, err := uc.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "bajo", items[0].ID)
}
