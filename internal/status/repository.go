package status

import "context"

// DefaultListLimit caps how many checks List returns.
const DefaultListLimit = 1000

// Repository persists status checks.
type Repository interface {
	// Create stores a new check.
	Create(ctx context.Context, check *Check) error

	// List returns checks oldest first, at most limit of them.
	List(ctx context.Context, limit int) ([]*Check, error)
}
