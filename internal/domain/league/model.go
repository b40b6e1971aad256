package league

import (
	"fmt"
	"time"
)

// Status tracks a league's lifecycle from signup to draft readiness.
type Status string

const (
	StatusSetup      Status = "setup"
	StatusDraftReady Status = "draft_ready"
)

const (
	// MaxMembers is the fixed league size: six head-to-head pairs.
	MaxMembers = 12
	// NumPairs matches the pool count of the division engine.
	NumPairs = 6
)

// Settings stores league-level roster configuration. The draft pick cutoff
// is deliberately not derived from these; see draft.MaxPicks.
type Settings struct {
	RosterSpots map[string]int `json:"roster_spots"`
	Scoring     string         `json:"scoring"`
}

func DefaultSettings() Settings {
	return Settings{
		RosterSpots: map[string]int{
			"QB": 1, "RB": 2, "WR": 2, "TE": 1, "FLEX": 1, "K": 1, "DEF": 1, "BENCH": 6,
		},
		Scoring: "PPR",
	}
}

// League is a twelve-member draft league.
type League struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CommissionerID string    `json:"commissioner_id"`
	Status         Status    `json:"status"`
	Settings       Settings  `json:"settings"`
	CreatedAt      time.Time `json:"created_at"`
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.CommissionerID == "" {
		return fmt.Errorf("league commissioner id is required")
	}

	return nil
}

// Member is one user's membership in a league. PairID stays nil until
// pairing runs and is never changed afterwards.
type Member struct {
	ID          string    `json:"id"`
	LeagueID    string    `json:"league_id"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name"`
	PairID      *string   `json:"pair_id,omitempty"`
	JoinedAt    time.Time `json:"joined_at"`
}

func (m Member) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("member id is required")
	}
	if m.LeagueID == "" {
		return fmt.Errorf("member league id is required")
	}
	if m.UserID == "" {
		return fmt.Errorf("member user id is required")
	}
	if m.DisplayName == "" {
		return fmt.Errorf("member display name is required")
	}

	return nil
}

// Pair binds two members to one draft pool.
type Pair struct {
	ID         string    `json:"id"`
	LeagueID   string    `json:"league_id"`
	PoolNumber int       `json:"pool_number"`
	CreatedAt  time.Time `json:"created_at"`
}
