package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmalyshev/webshop/internal/domain"
	"github.com/kmalyshev/webshop/internal/transport"
)

func TestProductService_CreateProduct_DuplicateName(t *testing.T) {
	t.Parallel()

	svc := &ProductService{Repo: newTestRepo(t)}
	ctx := context.Background()

	first, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Widget", Price: 9.99, Stock: 5})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Widget", Price: 1, Stock: 1})
	require.ErrorIs(t, err, domain.ErrNameTaken)

	kept, err := svc.GetProduct(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 9.99, kept.Price)
	assert.Equal(t, uint(5), kept.Stock)
}

func TestProductService_CreateProduct_Validation(t *testing.T) {
	t.Parallel()

	svc := &ProductService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "", Price: 1})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Widget", Price: -1})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestProductService_PatchProduct_RenameRules(t *testing.T) {
	t.Parallel()

	svc := &ProductService{Repo: newTestRepo(t)}
	ctx := context.Background()

	widget, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Widget", Price: 9.99, Stock: 5})
	require.NoError(t, err)
	gadget, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Gadget", Price: 5, Stock: 3})
	require.NoError(t, err)

	taken := "Widget"
	_, err = svc.PatchProduct(ctx, transport.UpdateProductRequest{Name: &taken}, gadget.ID)
	require.ErrorIs(t, err, domain.ErrNameTaken)

	// Renaming to the current name is a no-op, not a conflict.
	own := "Widget"
	updated, err := svc.PatchProduct(ctx, transport.UpdateProductRequest{Name: &own}, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", updated.Name)
}

func TestProductService_PatchProduct_NotFound(t *testing.T) {
	t.Parallel()

	svc := &ProductService{Repo: newTestRepo(t)}
	price := 1.0
	_, err := svc.PatchProduct(context.Background(), transport.UpdateProductRequest{Price: &price}, 42)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductService_DeleteProduct_NotFound(t *testing.T) {
	t.Parallel()

	svc := &ProductService{Repo: newTestRepo(t)}
	err := svc.DeleteProduct(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}
