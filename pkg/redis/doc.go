// Package redis connects to Redis from REDIS_* configuration. The client
// backs the shared taxonomy source.
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//	    return err
//	}
//	check := redis.Healthcheck(client)
package redis
