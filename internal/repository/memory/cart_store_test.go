package memory_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartStore_SaveAndFind(t *testing.T) {
	ctx := t.Context()
	store := memory.NewCartStore()
	userID := gofakeit.UUID()

	state, err := store.FindCart(ctx, userID)
	require.NoError(t, err)
	assert.False(t, state.IsPresent())

	line := domain.CartLine{ProductID: uuid.New(), Quantity: 2}
	created, err := store.SaveCart(ctx, domain.Cart{UserID: userID, Lines: []domain.CartLine{line}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)
	assert.False(t, created.CreatedAt.IsZero())

	// callers must not be able to reach the stored slice
	created.Lines[0].Quantity = 99

	state, err = store.FindCart(ctx, userID)
	require.NoError(t, err)
	stored, ok := state.Get()
	require.True(t, ok)
	assert.Equal(t, []domain.CartLine{line}, stored.Lines)

	stored.Lines = nil
	emptied, err := store.SaveCart(ctx, stored)
	require.NoError(t, err)
	assert.Equal(t, int64(2), emptied.Version)
	assert.Equal(t, []domain.CartLine{}, emptied.Lines)
}

func TestCartStore_VersionConflicts(t *testing.T) {
	ctx := t.Context()
	store := memory.NewCartStore()
	userID := gofakeit.UUID()

	created, err := store.SaveCart(ctx, domain.Cart{UserID: userID})
	require.NoError(t, err)

	_, err = store.SaveCart(ctx, domain.Cart{UserID: userID})
	require.ErrorIs(t, err, domain.ErrConcurrentModification, "second create")

	_, err = store.SaveCart(ctx, created)
	require.NoError(t, err)

	_, err = store.SaveCart(ctx, created)
	require.ErrorIs(t, err, domain.ErrConcurrentModification, "stale version")

	_, err = store.SaveCart(ctx, domain.Cart{UserID: gofakeit.UUID(), Version: 3})
	require.ErrorIs(t, err, domain.ErrConcurrentModification, "update of missing cart")
}

func TestCartStore_InvalidInput(t *testing.T) {
	store := memory.NewCartStore()

	_, err := store.FindCart(t.Context(), "")
	require.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = store.SaveCart(t.Context(), domain.Cart{})
	require.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = store.SaveCart(t.Context(), domain.Cart{
		UserID: gofakeit.UUID(),
		Lines:  []domain.CartLine{{ProductID: uuid.New(), Quantity: domain.MaxQuantity + 1}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidRequest, "quantity above int32")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = store.FindCart(ctx, gofakeit.UUID())
	require.ErrorIs(t, err, domain.ErrPersistence)
}
