package draft

import "time"

// Status is the draft lifecycle. A draft with no stored row is implicitly
// not started; once a row exists it is active until the pick cutoff
// completes it. There is no cancel or pause state.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusActive     Status = "active"
	StatusCompleted  Status = "completed"
)

// MaxPicks is the fixed pick cutoff per draft: fifteen roster slots per
// member, two members. Intentionally a constant rather than derived from
// league roster settings.
const MaxPicks = 30

// DefaultPickTimerSeconds is stored on every draft but not enforced
// anywhere; there is no auto-pick deadline.
const DefaultPickTimerSeconds = 90

// Draft is one pair's head-to-head draft.
type Draft struct {
	ID               string     `json:"id"`
	PairID           string     `json:"pair_id"`
	Status           Status     `json:"status"`
	CurrentPickerID  string     `json:"current_picker_id"`
	PickTimerSeconds int        `json:"pick_timer_seconds"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// Active reports whether picks are currently legal.
func (d Draft) Active() bool {
	return d.Status == StatusActive
}

// Pick is one recorded selection. Pick numbers are dense and strictly
// increasing per draft, starting at 1.
type Pick struct {
	DraftID    string    `json:"draft_id"`
	PickNumber int       `json:"pick_number"`
	MemberID   string    `json:"member_id"`
	PlayerID   string    `json:"player_id"`
	PickedAt   time.Time `json:"picked_at"`
}
