package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNotStructPointer is returned when Load receives anything other than a
// non-nil pointer to a struct.
var ErrNotStructPointer = errors.New("config: target must be a non-nil pointer to a struct")

var (
	loadEnvOnce sync.Once

	// cache holds one parsed value per concrete config type.
	cache sync.Map // reflect.Type -> any
)

// Load populates cfg from environment variables, loading a .env file once per
// process if one exists. Each concrete struct type is parsed only once; later
// calls for the same type return the cached value.
func Load(cfg any) error {
	rv := reflect.ValueOf(cfg)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	loadEnvOnce.Do(func() {
		// Missing .env is the common case in production; not an error.
		_ = godotenv.Load()
	})

	typ := rv.Elem().Type()
	if cached, ok := cache.Load(typ); ok {
		rv.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", typ, err)
	}

	actual, _ := cache.LoadOrStore(typ, rv.Elem().Interface())
	rv.Elem().Set(reflect.ValueOf(actual))
	return nil
}

// MustLoad is Load that panics on failure. Intended for application startup
// where a missing required variable should halt the process.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
