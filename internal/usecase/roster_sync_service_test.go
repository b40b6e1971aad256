package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/gridiron-league/pairdraft/internal/domain/player"
	"github.com/gridiron-league/pairdraft/internal/infrastructure/repository/memory"
)

type stubFeed struct {
	players []FeedPlayer
	err     error
}

func (f *stubFeed) FetchAllPlayers(context.Context) ([]FeedPlayer, error) {
	return f.players, f.err
}

func TestRosterSyncService_InsertsAndRefreshes(t *testing.T) {
	rank := 12
	existing := player.Player{
		ID:          "p-existing",
		SleeperID:   "4034",
		Name:        "Old Name",
		Team:        "KC",
		Position:    player.PositionRunningBack,
		SleeperRank: &rank,
	}
	repo := memory.NewPlayerRepository([]player.Player{existing})

	feed := &stubFeed{players: []FeedPlayer{
		{SleeperID: "4034", Name: "Patrick Mahomes", Team: "KC", Position: "QB", Age: 31, Status: "Active"},
		{SleeperID: "6786", Name: "Justin Jefferson", Team: "MIN", Position: "WR", Age: 27, Status: "Active"},
		{SleeperID: "9999", Name: "Long Snapper Guy", Team: "GB", Position: "LS", Age: 29, Status: "Active"},
		{SleeperID: "", Name: "No Sleeper ID", Team: "DAL", Position: "TE"},
	}}

	svc := NewRosterSyncService(repo, feed, &sequentialIDs{}, nil)
	result, err := svc.SyncRosters(context.Background(), RosterSyncInput{})
	if err != nil {
		t.Fatalf("SyncRosters: %v", err)
	}

	if result.Fetched != 4 {
		t.Fatalf("expected 4 fetched, got %d", result.Fetched)
	}
	if result.Upserted != 2 {
		t.Fatalf("expected 2 upserted, got %d", result.Upserted)
	}
	if result.Inserted != 1 {
		t.Fatalf("expected 1 inserted, got %d", result.Inserted)
	}
	if result.Skipped != 2 {
		t.Fatalf("expected 2 skipped, got %d", result.Skipped)
	}

	// Existing player refreshed in place, rank preserved.
	refreshed, exists, err := repo.Get(context.Background(), "p-existing")
	if err != nil || !exists {
		t.Fatalf("get refreshed player: exists=%v err=%v", exists, err)
	}
	if refreshed.Name != "Patrick Mahomes" {
		t.Fatalf("expected refreshed name, got %q", refreshed.Name)
	}
	if refreshed.Position != player.PositionQuarterback {
		t.Fatalf("expected refreshed position, got %q", refreshed.Position)
	}
	if refreshed.SleeperRank == nil || *refreshed.SleeperRank != 12 {
		t.Fatal("expected sleeper rank to survive the refresh")
	}

	players, err := repo.List(context.Background(), player.ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("expected 2 players after sync, got %d", len(players))
	}
}

func TestRosterSyncService_FeedFailure(t *testing.T) {
	repo := memory.NewPlayerRepository(nil)
	feed := &stubFeed{err: errors.New("upstream 503")}

	svc := NewRosterSyncService(repo, feed, &sequentialIDs{}, nil)
	_, err := svc.SyncRosters(context.Background(), RosterSyncInput{})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestRosterSyncService_NoFeedConfigured(t *testing.T) {
	svc := NewRosterSyncService(memory.NewPlayerRepository(nil), nil, &sequentialIDs{}, nil)

	_, err := svc.SyncRosters(context.Background(), RosterSyncInput{})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
