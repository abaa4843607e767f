// Package redis connects the storefront to Redis, where issued session tokens
// are kept with a TTL.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Connect retries the initial ping so the service can start alongside a Redis
// container that is still booting. Healthcheck plugs into the HTTP readiness
// endpoint.
package redis
