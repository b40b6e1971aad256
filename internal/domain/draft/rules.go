package draft

import (
	"errors"
	"fmt"
	"time"

	"github.com/gridiron-league/pairdraft/internal/domain/player"
)

var (
	ErrNotFound          = errors.New("draft not found")
	ErrAlreadyStarted    = errors.New("draft already exists for this pair")
	ErrPairIncomplete    = errors.New("pair must have exactly two members")
	ErrNotActive         = errors.New("draft is not active")
	ErrNotYourTurn       = errors.New("not your turn to pick")
	ErrPlayerUnavailable = errors.New("player not available in this pool")
	ErrAlreadyPicked     = errors.New("player already drafted")
)

// Start builds the initial active draft for a pair. The first member in
// stored order opens; fairness comes from the alternating turn structure
// and pool balance, not from a randomized start.
func Start(id, pairID string, memberIDs []string, now time.Time) (Draft, error) {
	if len(memberIDs) != 2 {
		return Draft{}, fmt.Errorf("%w: have %d", ErrPairIncomplete, len(memberIDs))
	}

	return Draft{
		ID:               id,
		PairID:           pairID,
		Status:           StatusActive,
		CurrentPickerID:  memberIDs[0],
		PickTimerSeconds: DefaultPickTimerSeconds,
		StartedAt:        now,
	}, nil
}

// ApplyPick validates one pick against the current draft state and returns
// the recorded pick plus the advanced draft. Checks run in a fixed order,
// each its own failure mode; on any failure both return values are zero
// and nothing may be persisted. Reaching MaxPicks completes the draft,
// leaving CurrentPickerID stale by design.
func ApplyPick(
	d Draft,
	picks []Pick,
	memberID string,
	chosen player.Player,
	poolNumber int,
	otherMemberID string,
	now time.Time,
) (Pick, Draft, error) {
	if !d.Active() {
		return Pick{}, Draft{}, ErrNotActive
	}
	if d.CurrentPickerID != memberID {
		return Pick{}, Draft{}, ErrNotYourTurn
	}
	if !chosen.InPool(poolNumber) {
		return Pick{}, Draft{}, fmt.Errorf("%w: player=%s pool=%d", ErrPlayerUnavailable, chosen.ID, poolNumber)
	}
	for _, p := range picks {
		if p.PlayerID == chosen.ID {
			return Pick{}, Draft{}, fmt.Errorf("%w: player=%s", ErrAlreadyPicked, chosen.ID)
		}
	}

	pick := Pick{
		DraftID:    d.ID,
		PickNumber: len(picks) + 1,
		MemberID:   memberID,
		PlayerID:   chosen.ID,
		PickedAt:   now,
	}

	d.CurrentPickerID = otherMemberID
	if pick.PickNumber >= MaxPicks {
		d.Status = StatusCompleted
		completedAt := now
		d.CompletedAt = &completedAt
	}

	return pick, d, nil
}
