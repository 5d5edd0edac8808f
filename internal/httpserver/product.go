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
	"github.com/kmalyshev/webshop/internal/models"
	"github.com/kmalyshev/webshop/internal/search"
	"github.com/kmalyshev/webshop/internal/service"
	"github.com/kmalyshev/webshop/internal/transport"
	"github.com/kmalyshev/webshop/pkg/logging"
)

type ProductHTTP struct {
	Svc      *service.ProductService
	Producer *events.Producer
	Search   *search.Service
}

func (h *ProductHTTP) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.Publish(ctx, events.ProductTopic, fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *ProductHTTP) index(c echo.Context, prod *models.Product) {
	if err := h.Search.IndexProduct(c.Request().Context(), prod); err != nil {
		logging.FromContext(c.Request().Context()).Error("search index error", "error", err)
	}
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	items, err := h.Svc.GetProducts(ctx)
	if err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	product, err := h.Svc.GetProduct(ctx, uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			l.Warn("get_product_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "desired product does not exist")
		}
		l.Error("get_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNameTaken):
			l.Warn("product_create_error", "status", 400, "reason", "name taken", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "product name already exists")
		case errors.Is(err, domain.ErrValidation):
			l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		default:
			l.Error("product_create_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product to db")
		}
	}

	h.publish(c, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	h.index(c, prod)

	l.Info("create_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.PatchProduct(ctx, req, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			l.Warn("product_update_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "desired product does not exist")
		case errors.Is(err, domain.ErrNameTaken):
			l.Warn("product_update_error", "status", 400, "reason", "name taken", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "cannot update the name, because name already exists")
		case errors.Is(err, domain.ErrValidation):
			l.Warn("product_update_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		default:
			l.Error("product_update_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
		}
	}

	h.publish(c, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	h.index(c, prod)

	l.Info("update_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("product_delete_error", "status", 400, "reason", "id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	if err := h.Svc.DeleteProduct(ctx, uint(id)); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			l.Warn("product_delete_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "desired product not found")
		}
		l.Error("product_delete_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product from db")
	}

	h.publish(c, map[string]any{
		"type":      "product_deleted",
		"productID": uint(id),
	})
	if err := h.Search.DeleteProduct(ctx, uint(id)); err != nil {
		l.Error("search index error", "error", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusOK)
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search_products")

	if !h.Search.Enabled() {
		l.Warn("search_error", "status", 503, "reason", "search disabled")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_error", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	size := 20
	if s, err := strconv.Atoi(c.QueryParam("size")); err == nil && s > 0 {
		size = s
	}

	total, products, err := h.Search.Search(ctx, q, size)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Products: products})
}
