package shop

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/storefront/pkg/httpserver"
	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
	"github.com/dmitrymomot/storefront/pkg/requestid"
)

// Services are the use-cases the API exposes. Every one is required.
type Services struct {
	Customers CustomerService
	Products  ProductService
	Orders    OrderService
	Sessions  SessionService
}

type routerConfig struct {
	logger       *slog.Logger
	checks       []httpserver.Check
	loginLimiter ratelimiter.Limiter
}

type Option func(*routerConfig)

// WithLogger sets the logger for access logs and faults.
func WithLogger(l *slog.Logger) Option {
	return func(c *routerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithReadinessChecks sets the probes behind /health/ready.
func WithReadinessChecks(checks ...httpserver.Check) Option {
	return func(c *routerConfig) {
		c.checks = append(c.checks, checks...)
	}
}

// WithLoginLimiter throttles POST /sessions per client address.
func WithLoginLimiter(l ratelimiter.Limiter) Option {
	return func(c *routerConfig) {
		c.loginLimiter = l
	}
}

// Router builds the storefront JSON API.
//
//	POST   /customers              GET|PATCH|DELETE /customers/{id}
//	POST   /products  GET /products GET|PATCH|DELETE /products/{id}
//	POST   /orders                 GET /orders/{id}  PATCH /orders/{id}/status
//	POST   /sessions               GET|DELETE /sessions/current
//	GET    /health/live            GET /health/ready
func Router(svc Services, opts ...Option) chi.Router {
	cfg := &routerConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(cfg)
	}
	log := cfg.logger

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		middleware.RealIP,
		accessLog(log),
		recoverer(log),
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		fail(w, http.StatusNotFound, "not_found", "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		fail(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	})

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, cfg.checks...))

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", modelHandler(log, http.StatusCreated, svc.Customers.Create))
		r.Get("/{id}", modelHandler(log, http.StatusOK, svc.Customers.Get))
		r.Patch("/{id}", modelHandler(log, http.StatusOK, svc.Customers.Update))
		r.Delete("/{id}", deleteHandler(log, svc.Customers.Delete))
	})

	r.Route("/products", func(r chi.Router) {
		r.Post("/", modelHandler(log, http.StatusCreated, svc.Products.Create))
		r.Get("/", listProducts(log, svc.Products))
		r.Get("/{id}", modelHandler(log, http.StatusOK, svc.Products.Get))
		r.Patch("/{id}", modelHandler(log, http.StatusOK, svc.Products.Update))
		r.Delete("/{id}", deleteHandler(log, svc.Products.Delete))
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", modelHandler(log, http.StatusCreated, svc.Orders.Create))
		r.Get("/{id}", modelHandler(log, http.StatusOK, svc.Orders.Get))
		r.Patch("/{id}/status", modelHandler(log, http.StatusOK, svc.Orders.UpdateStatus))
	})

	r.Route("/sessions", func(r chi.Router) {
		create := http.Handler(modelHandler(log, http.StatusCreated, svc.Sessions.Create))
		if cfg.loginLimiter != nil {
			create = ratelimiter.Middleware(cfg.loginLimiter, ratelimiter.KeyByIP("login:"),
				ratelimiter.WithLimitedHandler(func(w http.ResponseWriter, _ *http.Request) {
					fail(w, http.StatusTooManyRequests, "too_many_requests", "Too many sign-in attempts, try again later")
				}),
				ratelimiter.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
					renderError(w, r, log, err)
				}),
			)(create)
		}
		r.Method(http.MethodPost, "/", create)
		r.Get("/current", currentSession(log, svc.Sessions))
		r.Delete("/current", revokeSession(log, svc.Sessions))
	})

	return r
}
