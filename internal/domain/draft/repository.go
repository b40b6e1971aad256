package draft

import "context"

// DecideFunc inspects the draft and its picks under the repository's
// per-draft lock and returns the pick and draft state to persist. An error
// aborts with no writes.
type DecideFunc func(d Draft, picks []Pick) (Pick, Draft, error)

// Repository describes draft persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, d Draft) error
	Get(ctx context.Context, draftID string) (Draft, bool, error)
	GetByPair(ctx context.Context, pairID string) (Draft, bool, error)
	// ListPicks returns the draft's picks ordered by pick number.
	ListPicks(ctx context.Context, draftID string) ([]Pick, error)
	// SubmitPick serializes pick attempts per draft: it loads the current
	// draft and picks under an exclusive lock, runs decide, and persists
	// the returned pick and draft mutation atomically. Two concurrent
	// attempts for the same draft can never both observe the same state.
	SubmitPick(ctx context.Context, draftID string, decide DecideFunc) (Pick, Draft, error)
}
