package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kmalyshev/webshop/internal/domain"
	"github.com/kmalyshev/webshop/internal/models"
	"github.com/kmalyshev/webshop/internal/repo"
	"github.com/kmalyshev/webshop/internal/transport"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) CreateCart(ctx context.Context) (*transport.CartResponse, error) {
	cart, err := s.Repo.CreateCart(ctx)
	if err != nil {
		return nil, err
	}
	return &transport.CartResponse{
		ID:        cart.ID,
		Items:     []transport.CartItemResponse{},
		CreatedAt: cart.CreatedAt,
	}, nil
}

func (s *CartService) GetCart(ctx context.Context, cartID uint) (*transport.CartResponse, error) {
	cart, err := s.Repo.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, cart)
}

func (s *CartService) AddItem(ctx context.Context, cartID uint, req transport.AddItemRequest) (*transport.CartResponse, error) {
	if req.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required: %w", domain.ErrValidation)
	}
	quantity := uint(1)
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity == 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", domain.ErrValidation)
	}

	if err := s.Repo.AddItem(ctx, cartID, req.ProductID, quantity); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, cartID)
}

func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID uint) (*transport.CartResponse, error) {
	if err := s.Repo.RemoveItem(ctx, cartID, itemID); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, cartID)
}

// buildResponse re-reads every item and its product so the response always
// reflects committed state, never a snapshot taken before the mutation.
func (s *CartService) buildResponse(ctx context.Context, cart *models.Cart) (*transport.CartResponse, error) {
	items, err := s.Repo.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	resp := transport.CartResponse{
		ID:        cart.ID,
		Items:     make([]transport.CartItemResponse, 0, len(items)),
		CreatedAt: cart.CreatedAt,
	}
	for _, item := range items {
		prod, err := s.Repo.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				continue
			}
			return nil, err
		}
		resp.Items = append(resp.Items, transport.CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   *prod,
			CreatedAt: item.CreatedAt,
		})
	}

	return &resp, nil
}
