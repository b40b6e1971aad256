package pool

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gridiron-league/pairdraft/internal/domain/player"
)

var ErrInsufficientPlayers = errors.New("not enough players to divide into pools")

// NumPools is the fixed pool count: six pairs draft head to head, one pool
// each.
const NumPools = 6

// Config holds the division parameters.
type Config struct {
	NumPools int
	// MinPerPosition is the minimum count of each position every pool must
	// receive, and also the number of snake tiers distributed for it.
	MinPerPosition map[player.Position]int
}

func DefaultConfig() Config {
	return Config{
		NumPools: NumPools,
		MinPerPosition: map[player.Position]int{
			player.PositionQuarterback:  4,
			player.PositionRunningBack:  10,
			player.PositionWideReceiver: 10,
			player.PositionTightEnd:     4,
			player.PositionKicker:       2,
			player.PositionDefense:      2,
		},
	}
}

// MinPopulation is the smallest eligible population the config can divide
// without producing under-filled pools.
func (c Config) MinPopulation() int {
	total := 0
	for _, min := range c.MinPerPosition {
		total += min
	}
	return total * c.NumPools
}

// Result maps pool numbers to their assigned players and accumulated
// composite value. Assigned players carry PoolAssignment and
// CompositeValue filled in.
type Result struct {
	Pools  map[int][]player.Player
	Values map[int]float64
}

// Divide partitions the eligible population into value-balanced pools.
//
// Per position, players are sorted ascending by composite value and handed
// out in tiers of NumPools, alternating assignment direction each tier
// (snake order) until the position's minimum tier count is exhausted; a
// short tier assigns only the players it has, in the same truncated order.
// Everyone past the tier quota is a leftover: leftovers are sorted
// ascending by value and placed one at a time into whichever pool has the
// lowest running total, which is what drives cross-pool balance on large
// populations.
func Divide(players []player.Player, cfg Config) (Result, error) {
	if cfg.NumPools <= 0 || len(cfg.MinPerPosition) == 0 {
		return Result{}, fmt.Errorf("invalid division config")
	}

	byPosition := make(map[player.Position][]player.Player)
	eligible := 0
	for _, p := range players {
		if _, ok := cfg.MinPerPosition[p.Position]; !ok {
			continue
		}
		p.CompositeValue = p.ComputeValue()
		byPosition[p.Position] = append(byPosition[p.Position], p)
		eligible++
	}

	if min := cfg.MinPopulation(); eligible < min {
		return Result{}, fmt.Errorf("%w: have %d, need %d", ErrInsufficientPlayers, eligible, min)
	}

	for pos := range byPosition {
		group := byPosition[pos]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].CompositeValue != group[j].CompositeValue {
				return group[i].CompositeValue < group[j].CompositeValue
			}
			return group[i].ID < group[j].ID
		})
	}

	res := Result{
		Pools:  make(map[int][]player.Player, cfg.NumPools),
		Values: make(map[int]float64, cfg.NumPools),
	}
	for i := 0; i < cfg.NumPools; i++ {
		res.Pools[i] = nil
		res.Values[i] = 0
	}

	var leftovers []player.Player
	for _, pos := range player.PositionOrder {
		min, ok := cfg.MinPerPosition[pos]
		if !ok {
			continue
		}
		group := byPosition[pos]

		for tier := 0; tier < min; tier++ {
			start := tier * cfg.NumPools
			if start >= len(group) {
				break
			}
			end := start + cfg.NumPools
			if end > len(group) {
				end = len(group)
			}
			tierPlayers := group[start:end]

			for i, p := range tierPlayers {
				poolIdx := i
				if tier%2 == 1 {
					poolIdx = cfg.NumPools - 1 - i
				}
				assign(&res, poolIdx, p)
			}
		}

		if quota := min * cfg.NumPools; len(group) > quota {
			leftovers = append(leftovers, group[quota:]...)
		}
	}

	sort.SliceStable(leftovers, func(i, j int) bool {
		if leftovers[i].CompositeValue != leftovers[j].CompositeValue {
			return leftovers[i].CompositeValue < leftovers[j].CompositeValue
		}
		return leftovers[i].ID < leftovers[j].ID
	})

	for _, p := range leftovers {
		assign(&res, lightestPool(res.Values, cfg.NumPools), p)
	}

	return res, nil
}

func assign(res *Result, poolIdx int, p player.Player) {
	n := poolIdx
	p.PoolAssignment = &n
	res.Pools[poolIdx] = append(res.Pools[poolIdx], p)
	res.Values[poolIdx] += p.CompositeValue
}

// lightestPool returns the pool with the lowest accumulated value, lowest
// index winning ties.
func lightestPool(values map[int]float64, numPools int) int {
	best := 0
	for i := 1; i < numPools; i++ {
		if values[i] < values[best] {
			best = i
		}
	}
	return best
}

// Assignments flattens the result into persistence rows.
func (r Result) Assignments() []player.Assignment {
	var out []player.Assignment
	for idx := 0; idx < len(r.Pools); idx++ {
		for _, p := range r.Pools[idx] {
			out = append(out, player.Assignment{
				PlayerID:       p.ID,
				Pool:           idx,
				CompositeValue: p.CompositeValue,
			})
		}
	}
	return out
}
