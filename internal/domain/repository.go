package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CardRepository defines the catalog CRUD surface. The recommendation
// pipeline only consumes List; everything else serves the admin dashboard.
type CardRepository interface {
	List(ctx context.Context) ([]Card, error)
	GetByID(ctx context.Context, id string) (*Card, error)
	Search(ctx context.Context, filter CardFilter) ([]Card, error)
	Create(ctx context.Context, card Card) (*Card, error)
	Update(ctx context.Context, id string, card Card) (*Card, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// Advisor defines the interface to the conversational AI service. The reply
// is free text only; any intent in it is recovered by pattern matching.
type Advisor interface {
	Advise(ctx context.Context, history []ChatTurn, system, message string) (string, error)
}
