package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gridiron-league/pairdraft/internal/domain/league"
	"github.com/gridiron-league/pairdraft/internal/infrastructure/repository/memory"
)

// sequentialIDs hands out id-1, id-2, ... deterministically.
type sequentialIDs struct {
	next int
}

func (g *sequentialIDs) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

// identityShuffler leaves order untouched so pairings are predictable.
type identityShuffler struct{}

func (identityShuffler) Shuffle(int, func(i, j int)) {}

func newLeagueService(repo league.Repository) *LeagueService {
	return NewLeagueService(repo, &sequentialIDs{}, identityShuffler{}, nil)
}

func TestLeagueService_CreateAndJoin(t *testing.T) {
	repo := memory.NewLeagueRepository()
	svc := newLeagueService(repo)
	ctx := context.Background()

	detail, err := svc.CreateLeague(ctx, CreateLeagueInput{
		Name:             "Sunday League",
		CommissionerID:   "user-01",
		CommissionerName: "Commish",
	})
	if err != nil {
		t.Fatalf("CreateLeague: %v", err)
	}
	if detail.League.Status != league.StatusSetup {
		t.Fatalf("expected status %q, got %q", league.StatusSetup, detail.League.Status)
	}
	if len(detail.Members) != 1 {
		t.Fatalf("expected commissioner as first member, got %d members", len(detail.Members))
	}

	for i := 2; i <= league.MaxMembers; i++ {
		_, err := svc.JoinLeague(ctx, JoinLeagueInput{
			LeagueID:    detail.League.ID,
			UserID:      fmt.Sprintf("user-%02d", i),
			DisplayName: fmt.Sprintf("Manager %02d", i),
		})
		if err != nil {
			t.Fatalf("join member %d: %v", i, err)
		}
	}

	// Thirteenth member is over the cap.
	if _, err := svc.JoinLeague(ctx, JoinLeagueInput{
		LeagueID: detail.League.ID,
		UserID:   "user-13",
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for full league, got %v", err)
	}
}

func TestLeagueService_JoinTwiceConflicts(t *testing.T) {
	repo := memory.NewLeagueRepository()
	svc := newLeagueService(repo)
	ctx := context.Background()

	detail, err := svc.CreateLeague(ctx, CreateLeagueInput{Name: "L", CommissionerID: "user-01"})
	if err != nil {
		t.Fatalf("CreateLeague: %v", err)
	}

	if _, err := svc.JoinLeague(ctx, JoinLeagueInput{
		LeagueID: detail.League.ID,
		UserID:   "user-01",
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate user, got %v", err)
	}
}

func TestLeagueService_JoinMissingLeague(t *testing.T) {
	svc := newLeagueService(memory.NewLeagueRepository())

	_, err := svc.JoinLeague(context.Background(), JoinLeagueInput{
		LeagueID: "nope",
		UserID:   "user-01",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeagueService_CreatePairs(t *testing.T) {
	repo := memory.NewLeagueRepository()
	svc := newLeagueService(repo)
	ctx := context.Background()

	demo, members := memory.SeedDemoLeague()
	if err := repo.CreateLeague(ctx, demo); err != nil {
		t.Fatalf("seed league: %v", err)
	}
	for _, m := range members {
		if err := repo.AddMember(ctx, m); err != nil {
			t.Fatalf("seed member: %v", err)
		}
	}

	detail, err := svc.CreatePairs(ctx, demo.ID)
	if err != nil {
		t.Fatalf("CreatePairs: %v", err)
	}
	if len(detail.Pairs) != league.NumPairs {
		t.Fatalf("expected %d pairs, got %d", league.NumPairs, len(detail.Pairs))
	}
	for i, pw := range detail.Pairs {
		if pw.Pair.PoolNumber != i {
			t.Fatalf("pair %d bound to pool %d", i, pw.Pair.PoolNumber)
		}
		if len(pw.Members) != 2 {
			t.Fatalf("pair %d has %d members", i, len(pw.Members))
		}
	}

	// Identity shuffle keeps join order: pair 0 holds the first two joiners.
	if got := detail.Pairs[0].Members[0].ID; got != members[0].ID {
		t.Fatalf("expected first member %s in pair 0, got %s", members[0].ID, got)
	}

	updated, err := svc.GetLeague(ctx, demo.ID)
	if err != nil {
		t.Fatalf("GetLeague: %v", err)
	}
	if updated.League.Status != league.StatusDraftReady {
		t.Fatalf("expected status %q, got %q", league.StatusDraftReady, updated.League.Status)
	}
	for _, m := range updated.Members {
		if m.PairID == nil {
			t.Fatalf("member %s left unpaired", m.ID)
		}
	}

	// Pairing is one-time.
	if _, err := svc.CreatePairs(ctx, demo.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on repeat pairing, got %v", err)
	}
}

func TestLeagueService_CreatePairsNeedsTwelve(t *testing.T) {
	repo := memory.NewLeagueRepository()
	svc := newLeagueService(repo)
	ctx := context.Background()

	detail, err := svc.CreateLeague(ctx, CreateLeagueInput{Name: "Short League", CommissionerID: "user-01"})
	if err != nil {
		t.Fatalf("CreateLeague: %v", err)
	}

	_, err = svc.CreatePairs(ctx, detail.League.ID)
	if !errors.Is(err, league.ErrWrongMemberCount) {
		t.Fatalf("expected ErrWrongMemberCount, got %v", err)
	}
}
