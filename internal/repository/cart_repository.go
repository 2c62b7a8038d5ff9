package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-cart/internal/db"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) (port.CartRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func (r *cartRepository) FindCart(ctx context.Context, userID string) (domain.CartState, error) {
	if userID == "" {
		return domain.AbsentCart(), fmt.Errorf("%w: userID is empty", domain.ErrInvalidRequest)
	}

	dbCart, err := r.q.GetCart(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AbsentCart(), nil
	}
	if err != nil {
		return domain.AbsentCart(), fmt.Errorf("%w: q.GetCart: %w", domain.ErrPersistence, err)
	}

	rows, err := r.q.GetCartItems(ctx, userID)
	if err != nil {
		return domain.AbsentCart(), fmt.Errorf("%w: q.GetCartItems: %w", domain.ErrPersistence, err)
	}

	return domain.PresentCart(mapCartToDomain(dbCart, rows)), nil
}

func (r *cartRepository) SaveCart(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	if cart.UserID == "" {
		return domain.Cart{}, fmt.Errorf("%w: userID is empty", domain.ErrInvalidRequest)
	}
	if err := cart.CheckQuantities(); err != nil {
		return domain.Cart{}, err
	}

	saved, err := withTx(ctx, r.pool, func(q *db.Queries) (domain.Cart, error) {
		return saveCart(ctx, q, cart)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConcurrentModification) {
			return domain.Cart{}, err
		}
		return domain.Cart{}, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	return saved, nil
}

func saveCart(ctx context.Context, q *db.Queries, cart domain.Cart) (domain.Cart, error) {
	var (
		header db.Cart
		err    error
	)

	if cart.Version == 0 {
		header, err = q.InsertCart(ctx, cart.UserID)
	} else {
		header, err = q.BumpCartVersion(ctx, db.BumpCartVersionParams{
			UserID:  cart.UserID,
			Version: cart.Version,
		})
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Cart{}, fmt.Errorf("%w: cart[%s] is not at version %d",
			domain.ErrConcurrentModification, cart.UserID, cart.Version)
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.SaveCart: %w", err)
	}

	if err := q.DeleteCartItems(ctx, cart.UserID); err != nil {
		return domain.Cart{}, fmt.Errorf("q.DeleteCartItems: %w", err)
	}

	for i, line := range cart.Lines {
		err := q.InsertCartItem(ctx, db.InsertCartItemParams{
			UserID:    cart.UserID,
			ProductID: line.ProductID,
			Quantity:  int32(line.Quantity),
			Position:  int32(i),
		})
		if err != nil {
			return domain.Cart{}, fmt.Errorf("q.InsertCartItem[%s]: %w", line.ProductID, err)
		}
	}

	lines := make([]domain.CartLine, len(cart.Lines))
	copy(lines, cart.Lines)

	return domain.Cart{
		UserID:    header.UserID,
		Lines:     lines,
		Version:   header.Version,
		CreatedAt: header.CreatedAt,
		UpdatedAt: header.UpdatedAt,
	}, nil
}

func mapCartToDomain(header db.Cart, rows []db.GetCartItemsRow) domain.Cart {
	lines := make([]domain.CartLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, domain.CartLine{
			ProductID: row.ProductID,
			Quantity:  int(row.Quantity),
		})
	}

	return domain.Cart{
		UserID:    header.UserID,
		Lines:     lines,
		Version:   header.Version,
		CreatedAt: header.CreatedAt,
		UpdatedAt: header.UpdatedAt,
	}
}
