package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Connect opens a client and pings the primary until it answers, the retry
// budget is spent or ctx ends. The returned database is cfg.Database.
func Connect(ctx context.Context, cfg Config) (*mongo.Database, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.ConnectionURL).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetRetryWrites(true).
		SetRetryReads(true),
	)
	if err != nil {
		return nil, errors.Join(ErrFailedToConnectToMongo, err)
	}

	for range max(cfg.RetryAttempts, 1) {
		if err := client.Ping(ctx, nil); err == nil {
			return client.Database(cfg.Database), nil
		}

		select {
		case <-ctx.Done():
			_ = client.Disconnect(context.Background())
			return nil, errors.Join(ErrFailedToConnectToMongo, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	_ = client.Disconnect(context.Background())
	return nil, ErrFailedToConnectToMongo
}
