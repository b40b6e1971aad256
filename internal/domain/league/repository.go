package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	CreateLeague(ctx context.Context, l League) error
	GetLeague(ctx context.Context, leagueID string) (League, bool, error)
	AddMember(ctx context.Context, m Member) error
	// ListMembers returns members in join order.
	ListMembers(ctx context.Context, leagueID string) ([]Member, error)
	// ListPairMembers returns the pair's members in join order; the first
	// one opens the draft.
	ListPairMembers(ctx context.Context, pairID string) ([]Member, error)
	ListPairs(ctx context.Context, leagueID string) ([]Pair, error)
	GetPair(ctx context.Context, pairID string) (Pair, bool, error)
	// SavePairs persists the pairs, the member bindings, and the league
	// status change as a single unit. Pairing is one-time per league.
	SavePairs(ctx context.Context, leagueID string, pairing Pairing, status Status) error
}
