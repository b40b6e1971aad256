package draft

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gridiron-league/pairdraft/internal/domain/player"
)

var testNow = time.Date(2026, 8, 20, 19, 0, 0, 0, time.UTC)

func poolPlayer(id string, pool int) player.Player {
	n := pool
	return player.Player{
		ID:             id,
		Name:           "Player " + id,
		Position:       player.PositionRunningBack,
		PoolAssignment: &n,
	}
}

func activeDraft() Draft {
	return Draft{
		ID:               "draft-1",
		PairID:           "pair-1",
		Status:           StatusActive,
		CurrentPickerID:  "member-a",
		PickTimerSeconds: DefaultPickTimerSeconds,
		StartedAt:        testNow,
	}
}

func TestStart_FirstMemberOpens(t *testing.T) {
	d, err := Start("draft-1", "pair-1", []string{"member-a", "member-b"}, testNow)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if d.Status != StatusActive {
		t.Fatalf("expected active, got %s", d.Status)
	}
	if d.CurrentPickerID != "member-a" {
		t.Fatalf("expected member-a to open, got %s", d.CurrentPickerID)
	}
	if d.PickTimerSeconds != DefaultPickTimerSeconds {
		t.Fatalf("expected stored pick timer %d, got %d", DefaultPickTimerSeconds, d.PickTimerSeconds)
	}
	if d.CompletedAt != nil {
		t.Fatal("new draft must not carry a completion time")
	}
}

func TestStart_RejectsIncompletePair(t *testing.T) {
	for _, ids := range [][]string{nil, {"member-a"}, {"a", "b", "c"}} {
		_, err := Start("draft-1", "pair-1", ids, testNow)
		if !errors.Is(err, ErrPairIncomplete) {
			t.Fatalf("members %v: expected ErrPairIncomplete, got %v", ids, err)
		}
	}
}

func TestApplyPick_RecordsAndFlipsTurn(t *testing.T) {
	d := activeDraft()

	pick, updated, err := ApplyPick(d, nil, "member-a", poolPlayer("p-1", 2), 2, "member-b", testNow)
	if err != nil {
		t.Fatalf("apply pick failed: %v", err)
	}

	if pick.PickNumber != 1 {
		t.Fatalf("expected pick number 1, got %d", pick.PickNumber)
	}
	if pick.MemberID != "member-a" || pick.PlayerID != "p-1" {
		t.Fatalf("unexpected pick %+v", pick)
	}
	if updated.CurrentPickerID != "member-b" {
		t.Fatalf("expected turn to flip to member-b, got %s", updated.CurrentPickerID)
	}
	if updated.Status != StatusActive {
		t.Fatalf("expected draft still active, got %s", updated.Status)
	}
}

func TestApplyPick_ChecksRunInOrder(t *testing.T) {
	picked := []Pick{{DraftID: "draft-1", PickNumber: 1, MemberID: "member-b", PlayerID: "p-taken"}}

	cases := []struct {
		name    string
		draft   Draft
		member  string
		chosen  player.Player
		want    error
	}{
		{"completed draft", func() Draft { d := activeDraft(); d.Status = StatusCompleted; return d }(), "member-a", poolPlayer("p-1", 2), ErrNotActive},
		{"wrong turn", activeDraft(), "member-b", poolPlayer("p-1", 2), ErrNotYourTurn},
		{"wrong pool", activeDraft(), "member-a", poolPlayer("p-1", 4), ErrPlayerUnavailable},
		{"unassigned player", activeDraft(), "member-a", player.Player{ID: "p-1", Name: "No Pool"}, ErrPlayerUnavailable},
		{"already picked", activeDraft(), "member-a", poolPlayer("p-taken", 2), ErrAlreadyPicked},
	}

	for _, tc := range cases {
		_, _, err := ApplyPick(tc.draft, picked, tc.member, tc.chosen, 2, "member-b", testNow)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestApplyPick_CompletesAtCutoff(t *testing.T) {
	d := activeDraft()
	picks := make([]Pick, 0, MaxPicks-1)
	for i := 1; i < MaxPicks; i++ {
		picks = append(picks, Pick{
			DraftID:    d.ID,
			PickNumber: i,
			MemberID:   "member-a",
			PlayerID:   fmt.Sprintf("p-%02d", i),
		})
	}

	pick, updated, err := ApplyPick(d, picks, "member-a", poolPlayer("p-final", 2), 2, "member-b", testNow)
	if err != nil {
		t.Fatalf("final pick failed: %v", err)
	}

	if pick.PickNumber != MaxPicks {
		t.Fatalf("expected pick number %d, got %d", MaxPicks, pick.PickNumber)
	}
	if updated.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}
	if updated.CompletedAt == nil || !updated.CompletedAt.Equal(testNow) {
		t.Fatalf("expected completion stamp %v, got %v", testNow, updated.CompletedAt)
	}

	// The 31st attempt hits the inactive check.
	picks = append(picks, pick)
	_, _, err = ApplyPick(updated, picks, "member-b", poolPlayer("p-extra", 2), 2, "member-a", testNow)
	if !errors.Is(err, ErrNotActive) {
		t.Fatalf("expected ErrNotActive after cutoff, got %v", err)
	}
}
