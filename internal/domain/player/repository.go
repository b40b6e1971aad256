package player

import "context"

// ListFilter narrows the player listing; zero value lists everything.
type ListFilter struct {
	Position Position
	Pool     *int
	Limit    int
}

// Assignment is one division-engine result row to persist.
type Assignment struct {
	PlayerID       string
	Pool           int
	CompositeValue float64
}

// Repository describes player persistence needs from use cases.
type Repository interface {
	// List returns players matching the filter ordered ascending by
	// composite value.
	List(ctx context.Context, filter ListFilter) ([]Player, error)
	Get(ctx context.Context, playerID string) (Player, bool, error)
	// ListByPool returns the pool's membership ordered ascending by
	// composite value.
	ListByPool(ctx context.Context, poolNumber int) ([]Player, error)
	// CountAssigned reports how many players already carry a pool
	// assignment; non-zero means division has run.
	CountAssigned(ctx context.Context) (int, error)
	ApplyAssignments(ctx context.Context, assignments []Assignment) error
	// UpsertBySleeperID inserts new players and refreshes roster fields of
	// existing ones, preserving rank signals and pool assignments. Returns
	// the number of newly inserted players.
	UpsertBySleeperID(ctx context.Context, players []Player) (int, error)
}
