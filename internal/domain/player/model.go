package player

import (
	"fmt"
	"time"
)

// Position represents an NFL fantasy roster position.
type Position string

const (
	PositionQuarterback  Position = "QB"
	PositionRunningBack  Position = "RB"
	PositionWideReceiver Position = "WR"
	PositionTightEnd     Position = "TE"
	PositionKicker       Position = "K"
	PositionDefense      Position = "DEF"
)

var AllPositions = map[Position]struct{}{
	PositionQuarterback:  {},
	PositionRunningBack:  {},
	PositionWideReceiver: {},
	PositionTightEnd:     {},
	PositionKicker:       {},
	PositionDefense:      {},
}

// PositionOrder is the canonical iteration order for per-position processing.
var PositionOrder = []Position{
	PositionQuarterback,
	PositionRunningBack,
	PositionWideReceiver,
	PositionTightEnd,
	PositionKicker,
	PositionDefense,
}

// Player is a draftable NFL athlete in the shared population.
//
// Rank signals come from external sources and are independently optional.
// CompositeValue and PoolAssignment are derived: the division engine writes
// them, everything else reads them.
type Player struct {
	ID             string    `json:"id"`
	SleeperID      string    `json:"sleeper_id"`
	Name           string    `json:"name"`
	Team           string    `json:"team"`
	Position       Position  `json:"position"`
	Age            int       `json:"age"`
	Status         string    `json:"status"`
	SleeperRank    *int      `json:"sleeper_rank,omitempty"`
	ESPNRank       *int      `json:"espn_rank,omitempty"`
	YahooRank      *int      `json:"yahoo_rank,omitempty"`
	CompositeValue float64   `json:"composite_value"`
	PoolAssignment *int      `json:"pool_assignment,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}

// InPool reports whether the player currently belongs to the given pool.
func (p Player) InPool(poolNumber int) bool {
	return p.PoolAssignment != nil && *p.PoolAssignment == poolNumber
}
