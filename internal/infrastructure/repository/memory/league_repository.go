package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/gridiron-league/pairdraft/internal/domain/league"
)

type LeagueRepository struct {
	mu      sync.RWMutex
	leagues map[string]league.League
	// members keeps join order per league.
	members map[string][]league.Member
	pairs   map[string]league.Pair
	// pairsByLeague keeps pool-number order per league.
	pairsByLeague map[string][]string
}

func NewLeagueRepository() *LeagueRepository {
	return &LeagueRepository{
		leagues:       make(map[string]league.League),
		members:       make(map[string][]league.Member),
		pairs:         make(map[string]league.Pair),
		pairsByLeague: make(map[string][]string),
	}
}

func (r *LeagueRepository) CreateLeague(_ context.Context, l league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.leagues[l.ID]; exists {
		return fmt.Errorf("league %s already exists", l.ID)
	}
	r.leagues[l.ID] = l

	return nil
}

func (r *LeagueRepository) GetLeague(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leagues[leagueID]
	return l, ok, nil
}

func (r *LeagueRepository) AddMember(_ context.Context, m league.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leagues[m.LeagueID]; !ok {
		return fmt.Errorf("league %s does not exist", m.LeagueID)
	}
	r.members[m.LeagueID] = append(r.members[m.LeagueID], m)

	return nil
}

func (r *LeagueRepository) ListMembers(_ context.Context, leagueID string) ([]league.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.members[leagueID]
	out := make([]league.Member, len(members))
	copy(out, members)

	return out, nil
}

func (r *LeagueRepository) ListPairMembers(_ context.Context, pairID string) ([]league.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pair, ok := r.pairs[pairID]
	if !ok {
		return nil, nil
	}

	var out []league.Member
	for _, m := range r.members[pair.LeagueID] {
		if m.PairID != nil && *m.PairID == pairID {
			out = append(out, m)
		}
	}

	return out, nil
}

func (r *LeagueRepository) ListPairs(_ context.Context, leagueID string) ([]league.Pair, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.pairsByLeague[leagueID]
	out := make([]league.Pair, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.pairs[id])
	}

	return out, nil
}

func (r *LeagueRepository) GetPair(_ context.Context, pairID string) (league.Pair, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pairs[pairID]
	return p, ok, nil
}

func (r *LeagueRepository) SavePairs(_ context.Context, leagueID string, pairing league.Pairing, status league.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.leagues[leagueID]
	if !ok {
		return fmt.Errorf("league %s does not exist", leagueID)
	}
	if len(r.pairsByLeague[leagueID]) > 0 {
		return fmt.Errorf("league %s already has pairs", leagueID)
	}

	for _, p := range pairing.Pairs {
		r.pairs[p.ID] = p
		r.pairsByLeague[leagueID] = append(r.pairsByLeague[leagueID], p.ID)
	}

	members := r.members[leagueID]
	for i := range members {
		pairID, ok := pairing.MemberPair[members[i].ID]
		if !ok {
			continue
		}
		bound := pairID
		members[i].PairID = &bound
	}

	l.Status = status
	r.leagues[leagueID] = l

	return nil
}
