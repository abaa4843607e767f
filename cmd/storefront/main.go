// Command storefront serves the storefront JSON API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/storefront/db/migrations"
	"github.com/dmitrymomot/storefront/modules/shop"
	"github.com/dmitrymomot/storefront/pkg/config"
	"github.com/dmitrymomot/storefront/pkg/httpserver"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/mongo"
	"github.com/dmitrymomot/storefront/pkg/pg"
	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/requestid"
	"github.com/dmitrymomot/storefront/pkg/store"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/svc/customer"
	"github.com/dmitrymomot/storefront/svc/order"
	"github.com/dmitrymomot/storefront/svc/product"
	"github.com/dmitrymomot/storefront/svc/session"
)

type appConfig struct {
	Env          string   `env:"STOREFRONT_ENV" envDefault:"development"`
	Name         string   `env:"STOREFRONT_NAME" envDefault:"storefront"`
	StoreDriver  string   `env:"STOREFRONT_STORE" envDefault:"postgres"`
	SessionStore string   `env:"STOREFRONT_SESSION_STORE" envDefault:"redis"`
	Currencies   []string `env:"STOREFRONT_CURRENCIES" envSeparator:"," envDefault:"USD,EUR,GBP"`
}

func main() {
	if err := config.LoadEnv(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, err)
	}

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("storefront stopped", logger.Error(err))
		os.Exit(1)
	}
}

type repositories struct {
	customers, products, orders store.Repository
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	var (
		repos  repositories
		checks []httpserver.Check
		closes []func()
	)
	defer func() {
		for i := len(closes) - 1; i >= 0; i-- {
			closes[i]()
		}
	}()

	switch cfg.StoreDriver {
	case "postgres":
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return err
		}
		closes = append(closes, pool.Close)

		if err := pg.Migrate(ctx, pool, migrations.FS, pgCfg, log); err != nil {
			return err
		}
		repos = repositories{
			customers: store.NewPostgres(pool, customer.Table, customer.Columns...),
			products:  store.NewPostgres(pool, product.Table, product.Columns...),
			orders:    store.NewPostgres(pool, order.Table, order.Columns...),
		}
		checks = append(checks, httpserver.Check{Name: "postgres", Probe: pg.Healthcheck(pool)})
	case "mongo":
		var mongoCfg mongo.Config
		if err := config.Load(&mongoCfg); err != nil {
			return err
		}
		db, err := mongo.Connect(ctx, mongoCfg)
		if err != nil {
			return err
		}
		closes = append(closes, func() { _ = db.Client().Disconnect(context.Background()) })

		customers := store.NewMongo(db.Collection(customer.Table), store.WithUniqueIndex(customer.ColEmail))
		products := store.NewMongo(db.Collection(product.Table), store.WithUniqueIndex(product.ColName))
		orders := store.NewMongo(db.Collection(order.Table))
		for _, repo := range []*store.Mongo{customers, products, orders} {
			if err := repo.EnsureIndexes(ctx); err != nil {
				return err
			}
		}
		repos = repositories{customers: customers, products: products, orders: orders}
		checks = append(checks, httpserver.Check{Name: "mongo", Probe: mongo.Healthcheck(db)})
	case "memory":
		repos = repositories{
			customers: store.NewMemory(store.WithUnique(customer.ColEmail)),
			products:  store.NewMemory(store.WithUnique(product.ColName)),
			orders:    store.NewMemory(),
		}
		log.WarnContext(ctx, "using in-memory storage, data is lost on restart")
	default:
		return fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	var (
		tokens      session.TokenStore
		bucketStore ratelimiter.Store
	)
	switch cfg.SessionStore {
	case "redis":
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		closes = append(closes, func() { _ = client.Close() })

		tokens = session.NewRedisTokenStore(client, redisCfg.KeyPrefix)
		bucketStore = ratelimiter.NewRedisStore(client, redisCfg.KeyPrefix)
		checks = append(checks, httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)})
	case "memory":
		tokens = session.NewMemoryTokenStore()
		mem := ratelimiter.NewMemoryStore()
		closes = append(closes, mem.Close)
		bucketStore = mem
	default:
		return fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}

	var sessCfg session.Config
	if err := config.Load(&sessCfg); err != nil {
		return err
	}
	var limitCfg ratelimiter.Config
	if err := config.Load(&limitCfg); err != nil {
		return err
	}
	loginLimiter, err := ratelimiter.NewBucket(bucketStore, limitCfg)
	if err != nil {
		return err
	}
	var httpCfg httpserver.Config
	if err := config.Load(&httpCfg); err != nil {
		return err
	}

	v := validator.New(validator.WithLogger(log))
	services := shop.Services{
		Customers: customer.NewService(repos.customers, v,
			customer.WithLogger(log),
			customer.WithBcryptCost(sessCfg.BcryptCost),
		),
		Products: product.NewService(repos.products, v,
			product.WithLogger(log),
			product.WithCurrencies(cfg.Currencies...),
		),
		Orders: order.NewService(repos.orders, repos.customers, repos.products, v,
			order.WithLogger(log),
		),
		Sessions: session.NewService(repos.customers, tokens, v,
			session.WithLogger(log),
			session.WithTTL(sessCfg.TokenTTL),
		),
	}

	router := shop.Router(services,
		shop.WithLogger(log),
		shop.WithReadinessChecks(checks...),
		shop.WithLoginLimiter(loginLimiter),
	)

	return httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log)).Run(ctx, router)
}
