// Package redis provides Redis-backed session persistence for hosts that
// keep engagement history in a cache-grade store.
//
// Connect wraps the go-redis client with URL validation, retry logic, and a
// readiness ping. Store implements tracker.Store with one hash per session
// under "engagement:session:<id>" plus a per-user index set, so list-by-user
// reads stay O(sessions of that user).
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	store := redis.NewStore(client)
//	trk, err := tracker.New(store, userID)
package redis
