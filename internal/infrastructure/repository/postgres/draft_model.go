package postgres

import (
	"time"

	"github.com/gridiron-league/pairdraft/internal/domain/draft"
)

type draftTableModel struct {
	ID               string     `db:"id"`
	PairID           string     `db:"pair_id"`
	Status           string     `db:"status"`
	CurrentPickerID  string     `db:"current_picker_id"`
	PickTimerSeconds int        `db:"pick_timer_seconds"`
	StartedAt        time.Time  `db:"started_at"`
	CompletedAt      *time.Time `db:"completed_at"`
}

func (m draftTableModel) toDomain() draft.Draft {
	return draft.Draft{
		ID:               m.ID,
		PairID:           m.PairID,
		Status:           draft.Status(m.Status),
		CurrentPickerID:  m.CurrentPickerID,
		PickTimerSeconds: m.PickTimerSeconds,
		StartedAt:        m.StartedAt,
		CompletedAt:      m.CompletedAt,
	}
}

type pickTableModel struct {
	DraftID    string    `db:"draft_id"`
	PickNumber int       `db:"pick_number"`
	MemberID   string    `db:"member_id"`
	PlayerID   string    `db:"player_id"`
	PickedAt   time.Time `db:"picked_at"`
}

func (m pickTableModel) toDomain() draft.Pick {
	return draft.Pick{
		DraftID:    m.DraftID,
		PickNumber: m.PickNumber,
		MemberID:   m.MemberID,
		PlayerID:   m.PlayerID,
		PickedAt:   m.PickedAt,
	}
}
