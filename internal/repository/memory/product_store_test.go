package memory_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestProductStore(t *testing.T) {
	ctx := t.Context()

	seeded := domain.Product{
		ID:    uuid.New(),
		Name:  gofakeit.ProductName(),
		Price: domain.Money{Amount: decimal.NewFromInt(10), Currency: currency.USD},
		Stock: 4,
	}
	store := memory.NewProductStore(seeded)

	created, err := store.CreateProduct(ctx, domain.Product{
		Name:  gofakeit.ProductName(),
		Price: domain.Money{Amount: decimal.NewFromInt(3), Currency: currency.USD},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	_, err = store.CreateProduct(ctx, seeded)
	require.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = store.CreateProduct(ctx, domain.Product{Name: "broken", Stock: -1})
	require.ErrorIs(t, err, domain.ErrInvalidRequest)

	got, err := store.GetProduct(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Stock)

	_, err = store.GetProduct(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.SetStock(seeded.ID, -7))
	got, err = store.GetProduct(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	byID, err := store.GetProducts(ctx, []uuid.UUID{seeded.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, byID, 1)

	all, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, seeded.ID, all[0].ID)
	assert.Equal(t, created.ID, all[1].ID)
}

func TestProductStore_UpdateAndDelete(t *testing.T) {
	ctx := t.Context()

	seeded := domain.Product{
		ID:    uuid.New(),
		Name:  gofakeit.ProductName(),
		Price: domain.Money{Amount: decimal.NewFromInt(10), Currency: currency.USD},
		Stock: 4,
	}
	other := domain.Product{
		ID:    uuid.New(),
		Name:  gofakeit.ProductName(),
		Price: domain.Money{Amount: decimal.NewFromInt(2), Currency: currency.USD},
	}
	store := memory.NewProductStore(seeded, other)

	before, err := store.GetProduct(ctx, seeded.ID)
	require.NoError(t, err)

	changed := seeded
	changed.Name = "renamed"
	changed.Price = domain.Money{Amount: decimal.NewFromInt(9), Currency: currency.EUR}
	changed.Stock = 1

	updated, err := store.UpdateProduct(ctx, changed)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, currency.EUR, updated.Price.Currency)
	assert.Equal(t, before.CreatedAt, updated.CreatedAt)

	_, err = store.UpdateProduct(ctx, domain.Product{ID: uuid.New(), Name: "ghost"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.UpdateProduct(ctx, domain.Product{ID: seeded.ID})
	require.ErrorIs(t, err, domain.ErrInvalidRequest)

	require.NoError(t, store.DeleteProduct(ctx, seeded.ID))
	require.ErrorIs(t, store.DeleteProduct(ctx, seeded.ID), domain.ErrNotFound)

	_, err = store.GetProduct(ctx, seeded.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	all, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, other.ID, all[0].ID)
}
