// Package mongo provides MongoDB-backed session persistence.
//
// Connect wraps the official v2 driver with a connectivity ping; Store
// implements tracker.Store over a single sessions collection, with an absent
// session_end field marking open sessions.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	client, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Disconnect(ctx)
//
//	store := mongo.NewStore(client, cfg.Database)
//	trk, err := tracker.New(store, userID)
package mongo
