package shop_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/storefront/modules/shop"
	"github.com/dmitrymomot/storefront/pkg/httpserver"
	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
	"github.com/dmitrymomot/storefront/pkg/requestid"
	"github.com/dmitrymomot/storefront/pkg/store"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/svc/customer"
	"github.com/dmitrymomot/storefront/svc/order"
	"github.com/dmitrymomot/storefront/svc/product"
	"github.com/dmitrymomot/storefront/svc/session"
)

type envelope struct {
	Code  string          `json:"code"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
		Errors  []shop.FieldError   `json:"errors"`
	} `json:"error"`
}

func newServices() shop.Services {
	v := validator.New()
	customers := store.NewMemory(store.WithUnique(customer.ColEmail))
	products := store.NewMemory(store.WithUnique(product.ColName))
	orders := store.NewMemory()

	return shop.Services{
		Customers: customer.NewService(customers, v, customer.WithBcryptCost(bcrypt.MinCost)),
		Products:  product.NewService(products, v),
		Orders:    order.NewService(orders, customers, products, v),
		Sessions:  session.NewService(customers, session.NewMemoryTokenStore(), v),
	}
}

func newAPI(t *testing.T, opts ...shop.Option) http.Handler {
	t.Helper()
	return shop.Router(newServices(), opts...)
}

func call(t *testing.T, h http.Handler, method, path, body string, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestRouter_Checkout(t *testing.T) {
	t.Parallel()
	api := newAPI(t)

	rec, env := call(t, api, http.MethodPost, "/customers", `{"name":"Ada Lovelace","email":"ada@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ada := decode[customer.Customer](t, env)
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))

	rec, env = call(t, api, http.MethodPost, "/products", `{"name":"Desk","price":15000,"stock":2,"currency":"usd"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	desk := decode[product.Product](t, env)

	rec, env = call(t, api, http.MethodPost, "/orders",
		`{"customerId":"`+ada.ID+`","orderItems":[{"productId":"`+desk.ID+`","quantity":2}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	placed := decode[order.Order](t, env)
	assert.Equal(t, "pending", placed.Status)

	rec, env = call(t, api, http.MethodPatch, "/orders/"+placed.ID+"/status", `{"status":"paid"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "paid", decode[order.Order](t, env).Status)

	rec, env = call(t, api, http.MethodPost, "/sessions", `{"email":"ada@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sess := decode[session.Session](t, env)
	assert.Equal(t, ada.ID, sess.CustomerID)

	rec, env = call(t, api, http.MethodGet, "/sessions/current", "", "Authorization", "Bearer "+sess.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sess.Token, decode[session.Session](t, env).Token)

	rec, _ = call(t, api, http.MethodDelete, "/sessions/current", "", "Authorization", "Bearer "+sess.Token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = call(t, api, http.MethodGet, "/sessions/current", "", "Authorization", "Bearer "+sess.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", env.Error.Code)

	rec, _ = call(t, api, http.MethodDelete, "/customers/"+ada.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code, "the memory store has no foreign keys")
}

func TestRouter_ValidationEnvelope(t *testing.T) {
	t.Parallel()
	api := newAPI(t)

	rec, env := call(t, api, http.MethodPost, "/customers", `{"name":"A","email":"nope"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Code)
	assert.Equal(t, "validation_error", env.Error.Code)
	assert.ElementsMatch(t, []string{"name", "email", "password"}, keys(env.Error.Details))

	var rules []string
	for _, e := range env.Error.Errors {
		rules = append(rules, e.Field+":"+e.Rule)
	}
	assert.Contains(t, rules, "password:required")
}

func TestRouter_URLParamWinsOverBody(t *testing.T) {
	t.Parallel()
	api := newAPI(t)

	rec, env := call(t, api, http.MethodPatch, "/products/00000000-0000-4000-8000-000000000001", `{"id":"not-used","stock":3}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Len(t, env.Error.Errors, 1)
	assert.Equal(t, "id", env.Error.Errors[0].Field)
	assert.Equal(t, "exists", env.Error.Errors[0].Rule)
}

func TestRouter_BadRequests(t *testing.T) {
	t.Parallel()
	api := newAPI(t)

	t.Run("malformed JSON", func(t *testing.T) {
		rec, env := call(t, api, http.MethodPost, "/products", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", env.Error.Code)
	})

	t.Run("array body", func(t *testing.T) {
		rec, _ := call(t, api, http.MethodPost, "/products", `[1,2]`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader("name=Desk"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("missing content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"Desk"}`))
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec, env := call(t, api, http.MethodGet, "/nowhere", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", env.Error.Code)
	})
}

type faultyProducts struct {
	shop.ProductService
	err error
}

func (f faultyProducts) List(context.Context) ([]product.Product, error) { return nil, f.err }

func TestRouter_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
		key  string
	}{
		{"not found", store.ErrNotFound, http.StatusNotFound, "not_found"},
		{"conflict", store.ErrConflict, http.StatusConflict, "conflict"},
		{"fault", errors.New("connection refused"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newServices()
			svc.Products = faultyProducts{ProductService: svc.Products, err: tt.err}
			api := shop.Router(svc)

			rec, env := call(t, api, http.MethodGet, "/products", "")
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.key, env.Error.Code)
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	api := newAPI(t, shop.WithReadinessChecks(httpserver.Check{
		Name:  "db",
		Probe: func(context.Context) error { return errors.New("down") },
	}))

	rec, _ := call(t, api, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = call(t, api, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestRouter_LoginLimiter(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	api := newAPI(t, shop.WithLoginLimiter(bucket))
	body := `{"email":"nobody@example.com","password":"secret123"}`

	for range 2 {
		rec, _ := call(t, api, http.MethodPost, "/sessions", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	}

	rec, env := call(t, api, http.MethodPost, "/sessions", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "too_many_requests", env.Error.Code)

	rec, _ = call(t, api, http.MethodPost, "/customers", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "other routes are not limited")
}
