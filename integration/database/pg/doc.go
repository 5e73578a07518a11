// Package pg provides PostgreSQL-backed session persistence with connection
// management, embedded migrations, and health checking.
//
// It wraps the pgx driver with retry logic on connect, integrates goose for
// the engagement_sessions schema, and exposes a Store implementing
// tracker.Store so the lifecycle manager and the weekly aggregator share one
// gateway.
//
// # Usage
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, logger); err != nil {
//		log.Fatal(err)
//	}
//
//	store := pg.NewStore(pool)
//	trk, err := tracker.New(store, userID)
//
// Healthcheck returns a probe function for readiness endpoints:
//
//	check := pg.Healthcheck(pool)
//	if err := check(ctx); err != nil { ... }
package pg
