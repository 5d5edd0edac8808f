package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kmalyshev/webshop/internal/models"
	"github.com/kmalyshev/webshop/internal/repo"
	"github.com/kmalyshev/webshop/internal/service"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
	P  *ProductHTTP
	C  *CartHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	// Named shared-cache memory DB so every pooled connection sees the
	// same schema; the name keeps parallel tests isolated.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Cart{}, &models.CartItem{}))

	r := &repo.GormRepo{DB: db}

	env := &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,
		P:  &ProductHTTP{Svc: &service.ProductService{Repo: r}},
		C:  &CartHTTP{Svc: &service.CartService{Repo: r}},
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return env
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, code, httpErr.Code)
}

func (env *testEnv) seedProduct(name string, price float64, stock uint) *models.Product {
	prod := models.Product{Name: name, Price: price, Stock: stock}
	require.NoError(env.T, env.DB.Create(&prod).Error)
	return &prod
}

func (env *testEnv) seedCart() *models.Cart {
	cart := models.Cart{}
	require.NoError(env.T, env.DB.Create(&cart).Error)
	return &cart
}

func (env *testEnv) productStock(id uint) uint {
	var prod models.Product
	require.NoError(env.T, env.DB.First(&prod, id).Error)
	return prod.Stock
}
