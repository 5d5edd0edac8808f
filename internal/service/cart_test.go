package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmalyshev/webshop/internal/domain"
	"github.com/kmalyshev/webshop/internal/transport"
)

func uintPtr(v uint) *uint { return &v }

func TestCartService_AddThenRemoveRestoresStock(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	products := &ProductService{Repo: r}
	carts := &CartService{Repo: r}
	ctx := context.Background()

	prod, err := products.CreateProduct(ctx, transport.CreateProductRequest{Name: "Widget", Price: 9.99, Stock: 5})
	require.NoError(t, err)
	cart, err := carts.CreateCart(ctx)
	require.NoError(t, err)

	resp, err := carts.AddItem(ctx, cart.ID, transport.AddItemRequest{ProductID: prod.ID, Quantity: uintPtr(3)})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	after, err := products.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), after.Stock)

	resp, err = carts.RemoveItem(ctx, cart.ID, resp.Items[0].ID)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 0)

	restored, err := products.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(5), restored.Stock)
}

func TestCartService_AddItem_MergeSumsQuantity(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	products := &ProductService{Repo: r}
	carts := &CartService{Repo: r}
	ctx := context.Background()

	prod, err := products.CreateProduct(ctx, transport.CreateProductRequest{Name: "Widget", Price: 9.99, Stock: 10})
	require.NoError(t, err)
	cart, err := carts.CreateCart(ctx)
	require.NoError(t, err)

	_, err = carts.AddItem(ctx, cart.ID, transport.AddItemRequest{ProductID: prod.ID, Quantity: uintPtr(4)})
	require.NoError(t, err)
	resp, err := carts.AddItem(ctx, cart.ID, transport.AddItemRequest{ProductID: prod.ID, Quantity: uintPtr(2)})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, uint(6), resp.Items[0].Quantity)

	after, err := products.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(4), after.Stock)
}

func TestCartService_AddItem_OversellLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	products := &ProductService{Repo: r}
	carts := &CartService{Repo: r}
	ctx := context.Background()

	prod, err := products.CreateProduct(ctx, transport.CreateProductRequest{Name: "Widget", Price: 9.99, Stock: 5})
	require.NoError(t, err)
	cart, err := carts.CreateCart(ctx)
	require.NoError(t, err)

	_, err = carts.AddItem(ctx, cart.ID, transport.AddItemRequest{ProductID: prod.ID, Quantity: uintPtr(6)})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	after, err := products.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(5), after.Stock)

	resp, err := carts.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 0)
}

func TestCartService_AddItem_Validation(t *testing.T) {
	t.Parallel()

	carts := &CartService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := carts.AddItem(ctx, 1, transport.AddItemRequest{ProductID: 0})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = carts.AddItem(ctx, 1, transport.AddItemRequest{ProductID: 1, Quantity: uintPtr(0)})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCartService_GetCart_NotFound(t *testing.T) {
	t.Parallel()

	carts := &CartService{Repo: newTestRepo(t)}
	_, err := carts.GetCart(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestCartService_RemoveItem_WrongCart(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	products := &ProductService{Repo: r}
	carts := &CartService{Repo: r}
	ctx := context.Background()

	prod, err := products.CreateProduct(ctx, transport.CreateProductRequest{Name: "Widget", Price: 9.99, Stock: 5})
	require.NoError(t, err)
	first, err := carts.CreateCart(ctx)
	require.NoError(t, err)
	second, err := carts.CreateCart(ctx)
	require.NoError(t, err)

	resp, err := carts.AddItem(ctx, first.ID, transport.AddItemRequest{ProductID: prod.ID, Quantity: uintPtr(1)})
	require.NoError(t, err)

	_, err = carts.RemoveItem(ctx, second.ID, resp.Items[0].ID)
	require.ErrorIs(t, err, domain.ErrItemNotFound)
}
