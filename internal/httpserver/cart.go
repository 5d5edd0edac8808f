package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kmalyshev/webshop/internal/domain"
	"github.com/kmalyshev/webshop/internal/events"
	"github.com/kmalyshev/webshop/internal/service"
	"github.com/kmalyshev/webshop/internal/transport"
	"github.com/kmalyshev/webshop/pkg/logging"
)

type CartHTTP struct {
	Svc      *service.CartService
	Producer *events.Producer
}

func (h *CartHTTP) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.Publish(ctx, events.CartTopic, fmt.Sprint(event["cartID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func cartID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *CartHTTP) CreateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.create_cart")

	cart, err := h.Svc.CreateCart(ctx)
	if err != nil {
		l.Error("create_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create cart")
	}

	h.publish(c, map[string]any{
		"type":   "cart_created",
		"cartID": cart.ID,
	})

	l.Info("create_cart_success", "cart_id", cart.ID)
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	id, err := cartID(c)
	if err != nil {
		l.Warn("get_cart_error", "status", 400, "reason", "id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	cart, err := h.Svc.GetCart(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			l.Warn("get_cart_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "cart not found")
		}
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get cart")
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	id, err := cartID(c)
	if err != nil {
		l.Warn("add_item_error", "status", 400, "reason", "id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Svc.AddItem(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCartNotFound):
			l.Warn("add_item_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "cart not found")
		case errors.Is(err, domain.ErrProductNotFound):
			l.Warn("add_item_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		case errors.Is(err, domain.ErrInsufficientStock):
			l.Warn("add_item_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "not enough stock")
		case errors.Is(err, domain.ErrValidation):
			l.Warn("add_item_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "quantity>0 and product_id required")
		default:
			l.Error("add_item_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot add item to cart")
		}
	}

	h.publish(c, map[string]any{
		"type":      "cart_item_added",
		"cartID":    id,
		"productID": req.ProductID,
	})

	l.Info("add_item_success", "cart_id", id, "product_id", req.ProductID)
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	id, err := cartID(c)
	if err != nil {
		l.Warn("remove_item_error", "status", 400, "reason", "id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		l.Warn("remove_item_error", "status", 400, "reason", "item_id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "item_id is not integer")
	}

	cart, err := h.Svc.RemoveItem(ctx, id, uint(itemID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCartNotFound):
			l.Warn("remove_item_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "cart not found")
		case errors.Is(err, domain.ErrItemNotFound):
			l.Warn("remove_item_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "cart item not found")
		default:
			l.Error("remove_item_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot remove item from cart")
		}
	}

	h.publish(c, map[string]any{
		"type":   "cart_item_removed",
		"cartID": id,
		"itemID": uint(itemID),
	})

	l.Info("remove_item_success", "cart_id", id, "item_id", itemID)
	return c.JSON(http.StatusOK, cart)
}
