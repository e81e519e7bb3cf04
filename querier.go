package kvline

import "context"

// Querier is the operation surface of a Client.
type Querier interface {
	Set(ctx context.Context, key, value string) (bool, error)
	Get(ctx context.Context, key string) (Item, error)
	Delete(ctx context.Context, key string) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
}
