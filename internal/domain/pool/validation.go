package pool

import (
	"fmt"
	"math"
	"sort"

	"github.com/gridiron-league/pairdraft/internal/domain/player"
)

// MaxDeviationRatio bounds how far any pool's total value may drift from
// the cross-pool average before the division counts as unbalanced.
const MaxDeviationRatio = 0.05

// PoolStats summarizes one pool for the balance report.
type PoolStats struct {
	PlayerCount int                     `json:"total_players"`
	TotalValue  float64                 `json:"total_value"`
	Deviation   float64                 `json:"value_deviation"`
	Positions   map[player.Position]int `json:"positions"`
}

// Report is the read-only outcome of a balance validation pass. Callers
// decide what to do with an unbalanced result; validation never mutates
// pools.
type Report struct {
	Balanced bool              `json:"balanced"`
	Warnings []string          `json:"warnings"`
	Stats    map[int]PoolStats `json:"pool_stats"`
}

// Validate checks value balance and position minimums across the divided
// pools.
func Validate(res Result, cfg Config) Report {
	report := Report{
		Balanced: true,
		Warnings: []string{},
		Stats:    make(map[int]PoolStats, len(res.Pools)),
	}
	if len(res.Values) == 0 {
		return report
	}

	var total float64
	for _, v := range res.Values {
		total += v
	}
	avg := total / float64(len(res.Values))
	maxDeviation := avg * MaxDeviationRatio

	indices := make([]int, 0, len(res.Pools))
	for idx := range res.Pools {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	for _, idx := range indices {
		positions := make(map[player.Position]int)
		for _, p := range res.Pools[idx] {
			positions[p.Position]++
		}

		deviation := math.Abs(res.Values[idx] - avg)
		report.Stats[idx] = PoolStats{
			PlayerCount: len(res.Pools[idx]),
			TotalValue:  res.Values[idx],
			Deviation:   deviation,
			Positions:   positions,
		}

		if deviation > maxDeviation {
			report.Balanced = false
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("pool %d value deviation too high: %.2f", idx, deviation))
		}

		for _, pos := range player.PositionOrder {
			required, ok := cfg.MinPerPosition[pos]
			if !ok {
				continue
			}
			if positions[pos] < required {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("pool %d has insufficient %ss: %d/%d", idx, pos, positions[pos], required))
			}
		}
	}

	return report
}
