package player

// UnrankedValue is the sentinel composite value for a player with no rank
// signal at all: strictly worse than any ranked player.
const UnrankedValue = 999.0

// Multiplier returns the per-position scaling applied to averaged ranks.
// Quarterbacks skew earlier in singular-QB formats, tight ends and the
// K/DEF slots later; RB/WR are baseline.
func Multiplier(pos Position) float64 {
	switch pos {
	case PositionQuarterback:
		return 1.2
	case PositionRunningBack, PositionWideReceiver:
		return 1.0
	case PositionTightEnd:
		return 0.9
	case PositionKicker:
		return 0.5
	case PositionDefense:
		return 0.6
	default:
		return 0.8
	}
}

// CompositeValue collapses up to three external rank signals into a single
// comparable number; lower is more valuable. Missing signals are skipped,
// the present ones averaged, then scaled by the position multiplier. With
// no signal at all the UnrankedValue sentinel is returned unscaled.
func CompositeValue(pos Position, sleeperRank, espnRank, yahooRank *int) float64 {
	var sum, count float64
	for _, rank := range []*int{sleeperRank, espnRank, yahooRank} {
		if rank == nil {
			continue
		}
		sum += float64(*rank)
		count++
	}

	if count == 0 {
		return UnrankedValue
	}

	return sum / count * Multiplier(pos)
}

// ComputeValue derives the player's composite value from its own signals.
func (p Player) ComputeValue() float64 {
	return CompositeValue(p.Position, p.SleeperRank, p.ESPNRank, p.YahooRank)
}
