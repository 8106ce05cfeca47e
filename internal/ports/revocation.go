package ports

import (
	"context"
	"time"
)

// RevocationList is a short-lived denylist of token IDs, checked by the
// gateway when configured. Entries only need to outlive the token itself.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
