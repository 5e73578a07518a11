package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Config holds MongoDB connection settings with environment variable mapping.
type Config struct {
	ConnectionURL  string        `env:"MONGO_CONN_URL,required"`
	Database       string        `env:"MONGO_DB" envDefault:"engagement"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Domain-specific MongoDB errors. Use errors.Is() for checks.
var (
	ErrEmptyConnectionURL = errors.New("empty mongo connection URL")
	ErrFailedToConnect    = errors.New("failed to connect to mongo")
	ErrHealthcheckFailed  = errors.New("mongo healthcheck failed")
)

// Connect creates a MongoDB client and verifies connectivity with a ping.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.ConnectionURL))
	if err != nil {
		return nil, errors.Join(ErrFailedToConnect, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, errors.Join(ErrFailedToConnect, err)
	}
	return client, nil
}

// Healthcheck returns a function suitable for readiness probes.
func Healthcheck(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx, nil); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
