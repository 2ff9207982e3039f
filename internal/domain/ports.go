package domain

import (
	"context"
	"time"
)

// Catalog is the read-only set of properties driving the page.
type Catalog interface {
	All() []Property
	Get(id int64) (Property, error)
	Len() int
	// Primary supplies the site-wide contact details.
	Primary() Property
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
