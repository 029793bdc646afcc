// Package redis connects to the Redis server that backs session.RedisStore.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//	store := session.NewRedisStore(client, "")
//
// Healthcheck adapts the client to the func(context.Context) error shape
// expected by httpserver.HealthCheckHandler.
package redis
