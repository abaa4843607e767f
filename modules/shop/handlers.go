package shop

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/svc/customer"
	"github.com/dmitrymomot/storefront/svc/order"
	"github.com/dmitrymomot/storefront/svc/product"
	"github.com/dmitrymomot/storefront/svc/session"
)

type CustomerService interface {
	Create(ctx context.Context, input validator.Model) (customer.Customer, error)
	Update(ctx context.Context, input validator.Model) (customer.Customer, error)
	Get(ctx context.Context, input validator.Model) (customer.Customer, error)
	Delete(ctx context.Context, input validator.Model) error
}

type ProductService interface {
	Create(ctx context.Context, input validator.Model) (product.Product, error)
	Update(ctx context.Context, input validator.Model) (product.Product, error)
	Get(ctx context.Context, input validator.Model) (product.Product, error)
	List(ctx context.Context) ([]product.Product, error)
	Delete(ctx context.Context, input validator.Model) error
}

type OrderService interface {
	Create(ctx context.Context, input validator.Model) (order.Order, error)
	Get(ctx context.Context, input validator.Model) (order.Order, error)
	UpdateStatus(ctx context.Context, input validator.Model) (order.Order, error)
}

type SessionService interface {
	Create(ctx context.Context, input validator.Model) (session.Session, error)
	Resolve(ctx context.Context, token string) (session.Session, error)
	Revoke(ctx context.Context, token string) error
}

// modelHandler binds the request into a model, runs call and renders its
// result with status.
func modelHandler[T any](log *slog.Logger, status int, call func(context.Context, validator.Model) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		model, err := bindModel(w, r)
		if err != nil {
			renderError(w, r, log, err)
			return
		}

		result, err := call(r.Context(), model)
		if err != nil {
			renderError(w, r, log, err)
			return
		}
		ok(w, status, result)
	}
}

func deleteHandler(log *slog.Logger, call func(context.Context, validator.Model) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		model, err := bindModel(w, r)
		if err != nil {
			renderError(w, r, log, err)
			return
		}
		if err := call(r.Context(), model); err != nil {
			renderError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listProducts(log *slog.Logger, svc ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			renderError(w, r, log, err)
			return
		}
		ok(w, http.StatusOK, list)
	}
}

func currentSession(log *slog.Logger, svc SessionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.Resolve(r.Context(), bearerToken(r))
		if err != nil {
			renderError(w, r, log, err)
			return
		}
		ok(w, http.StatusOK, sess)
	}
}

func revokeSession(log *slog.Logger, svc SessionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Revoke(r.Context(), bearerToken(r)); err != nil {
			renderError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func bearerToken(r *http.Request) string {
	const prefix = "bearer "
	h := r.Header.Get("Authorization")
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
