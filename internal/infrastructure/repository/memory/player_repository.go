package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gridiron-league/pairdraft/internal/domain/player"
)

type PlayerRepository struct {
	mu          sync.RWMutex
	players     map[string]player.Player
	bySleeperID map[string]string
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{
		players:     make(map[string]player.Player, len(players)),
		bySleeperID: make(map[string]string, len(players)),
	}
	for _, p := range players {
		r.players[p.ID] = p
		if p.SleeperID != "" {
			r.bySleeperID[p.SleeperID] = p.ID
		}
	}

	return r
}

func (r *PlayerRepository) List(_ context.Context, filter player.ListFilter) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		if filter.Position != "" && p.Position != filter.Position {
			continue
		}
		if filter.Pool != nil && !p.InPool(*filter.Pool) {
			continue
		}
		out = append(out, p)
	}

	sortByValue(out)
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *PlayerRepository) Get(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) ListByPool(_ context.Context, poolNumber int) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []player.Player
	for _, p := range r.players {
		if p.InPool(poolNumber) {
			out = append(out, p)
		}
	}

	sortByValue(out)
	return out, nil
}

func (r *PlayerRepository) CountAssigned(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, p := range r.players {
		if p.PoolAssignment != nil {
			count++
		}
	}

	return count, nil
}

func (r *PlayerRepository) ApplyAssignments(_ context.Context, assignments []player.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range assignments {
		p, ok := r.players[a.PlayerID]
		if !ok {
			continue
		}
		poolNumber := a.Pool
		p.PoolAssignment = &poolNumber
		p.CompositeValue = a.CompositeValue
		r.players[a.PlayerID] = p
	}

	return nil
}

func (r *PlayerRepository) UpsertBySleeperID(_ context.Context, players []player.Player) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inserted := 0
	for _, incoming := range players {
		existingID, ok := r.bySleeperID[incoming.SleeperID]
		if !ok {
			r.players[incoming.ID] = incoming
			r.bySleeperID[incoming.SleeperID] = incoming.ID
			inserted++
			continue
		}

		// Refresh roster fields only; ranks, value, and pool assignment
		// belong to this system, not the feed.
		existing := r.players[existingID]
		existing.Name = incoming.Name
		existing.Team = incoming.Team
		existing.Position = incoming.Position
		existing.Age = incoming.Age
		existing.Status = incoming.Status
		existing.UpdatedAt = incoming.UpdatedAt
		r.players[existingID] = existing
	}

	return inserted, nil
}

func sortByValue(players []player.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].CompositeValue != players[j].CompositeValue {
			return players[i].CompositeValue < players[j].CompositeValue
		}
		return players[i].ID < players[j].ID
	})
}
