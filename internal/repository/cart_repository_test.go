package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type cartRepositorySuite struct {
	suite.Suite

	repo port.CartRepository
	pool *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(cartRepositorySuite))
}

// before all tests in the suite
func (suite *cartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo, err = repository.NewCart(suite.pool)
	suite.Require().NoError(err)
}

// after all tests in the suite
func (suite *cartRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *cartRepositorySuite) TestFindCart() {
	defer suite.deleteAll()

	tests := []struct {
		name        string
		userID      string
		setupLines  []domain.CartLine
		skipSave    bool
		wantPresent bool
		wantError   string
	}{
		{
			name:        "find cart with lines: ok",
			userID:      gofakeit.UUID(),
			setupLines:  []domain.CartLine{randomCartLine(), randomCartLine(), randomCartLine()},
			wantPresent: true,
		},
		{
			name:        "find persisted empty cart: ok",
			userID:      gofakeit.UUID(),
			setupLines:  []domain.CartLine{},
			wantPresent: true,
		},
		{
			name:        "find absent cart: ok",
			userID:      gofakeit.UUID(),
			skipSave:    true,
			wantPresent: false,
		},
		{
			name:      "find cart with empty user ID: error",
			userID:    "",
			skipSave:  true,
			wantError: "invalid request: userID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			if !tt.skipSave {
				_, err := suite.repo.SaveCart(ctx, domain.Cart{UserID: tt.userID, Lines: tt.setupLines})
				require.NoError(t, err)
			}

			state, err := suite.repo.FindCart(ctx, tt.userID)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			cart, ok := state.Get()
			require.Equal(t, tt.wantPresent, ok)
			if !ok {
				return
			}

			assert.Equal(t, tt.userID, cart.UserID)
			assert.Equal(t, int64(1), cart.Version)
			assert.Empty(t, cmp.Diff(tt.setupLines, cart.Lines))
			assert.False(t, cart.CreatedAt.IsZero())
		})
	}
}

func (suite *cartRepositorySuite) TestSaveCart() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	userID := gofakeit.UUID()
	first := randomCartLine()
	second := randomCartLine()

	created, err := suite.repo.SaveCart(ctx, domain.Cart{
		UserID: userID,
		Lines:  []domain.CartLine{first},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)

	created.Lines = append(created.Lines, second)
	created.Lines[0].Quantity += 5

	updated, err := suite.repo.SaveCart(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	state, err := suite.repo.FindCart(ctx, userID)
	require.NoError(t, err)

	stored, ok := state.Get()
	require.True(t, ok)
	assert.Equal(t, int64(2), stored.Version)
	assert.Empty(t, cmp.Diff([]domain.CartLine{
		{ProductID: first.ProductID, Quantity: first.Quantity + 5},
		second,
	}, stored.Lines))

	stored.Lines = []domain.CartLine{}
	emptied, err := suite.repo.SaveCart(ctx, stored)
	require.NoError(t, err)
	assert.Empty(t, emptied.Lines)

	state, err = suite.repo.FindCart(ctx, userID)
	require.NoError(t, err)
	require.True(t, state.IsPresent())
}

func (suite *cartRepositorySuite) TestSaveCart_ConcurrentModification() {
	defer suite.deleteAll()

	tests := []struct {
		name    string
		prepare func(t *testing.T, userID string) domain.Cart
	}{
		{
			name: "stale version: error",
			prepare: func(t *testing.T, userID string) domain.Cart {
				ctx := t.Context()

				created, err := suite.repo.SaveCart(ctx, domain.Cart{UserID: userID, Lines: []domain.CartLine{randomCartLine()}})
				require.NoError(t, err)

				_, err = suite.repo.SaveCart(ctx, created)
				require.NoError(t, err)

				return created
			},
		},
		{
			name: "concurrent create: error",
			prepare: func(t *testing.T, userID string) domain.Cart {
				_, err := suite.repo.SaveCart(t.Context(), domain.Cart{UserID: userID, Lines: []domain.CartLine{randomCartLine()}})
				require.NoError(t, err)

				return domain.Cart{UserID: userID, Lines: []domain.CartLine{randomCartLine()}}
			},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			userID := gofakeit.UUID()

			stale := tt.prepare(t, userID)

			_, err := suite.repo.SaveCart(t.Context(), stale)
			require.ErrorIs(t, err, domain.ErrConcurrentModification)
		})
	}
}

func (suite *cartRepositorySuite) TestSaveCart_EmptyUserID() {
	_, err := suite.repo.SaveCart(suite.T().Context(), domain.Cart{Lines: []domain.CartLine{randomCartLine()}})
	require.ErrorIs(suite.T(), err, domain.ErrInvalidRequest)
}

func (suite *cartRepositorySuite) TestSaveCart_QuantityOutOfRange() {
	defer suite.deleteAll()

	tests := []struct {
		name     string
		quantity int
	}{
		{name: "above int32: error", quantity: domain.MaxQuantity + 1},
		{name: "zero: error", quantity: 0},
		{name: "negative: error", quantity: -1},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()
			userID := gofakeit.UUID()

			_, err := suite.repo.SaveCart(ctx, domain.Cart{
				UserID: userID,
				Lines:  []domain.CartLine{{ProductID: uuid.New(), Quantity: tt.quantity}},
			})
			require.ErrorIs(t, err, domain.ErrInvalidRequest)

			state, err := suite.repo.FindCart(ctx, userID)
			require.NoError(t, err)
			assert.False(t, state.IsPresent())
		})
	}
}

func (suite *cartRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE carts CASCADE")
	suite.NoError(err)
}

func randomCartLine() domain.CartLine {
	return domain.CartLine{
		ProductID: uuid.MustParse(gofakeit.UUID()),
		Quantity:  gofakeit.IntRange(1, 20),
	}
}
