package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/gridiron-league/pairdraft/internal/infrastructure/repository/memory"
)

// mockRosterFeed is a testify mock for the roster feed, used where the
// stub in roster_sync_service_test.go cannot express call expectations.
type mockRosterFeed struct {
	mock.Mock
}

func (m *mockRosterFeed) FetchAllPlayers(ctx context.Context) ([]FeedPlayer, error) {
	args := m.Called(ctx)
	players, _ := args.Get(0).([]FeedPlayer)
	return players, args.Error(1)
}

func TestRosterSyncService_FetchesFeedExactlyOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	feed := &mockRosterFeed{}
	feed.
		On("FetchAllPlayers", mock.MatchedBy(func(v context.Context) bool { return v != nil })).
		Return([]FeedPlayer{
			{SleeperID: "4034", Name: "Patrick Mahomes", Team: "KC", Position: "QB", Age: 31, Status: "Active"},
		}, nil).
		Once()

	svc := NewRosterSyncService(memory.NewPlayerRepository(nil), feed, &sequentialIDs{}, nil)
	result, err := svc.SyncRosters(ctx, RosterSyncInput{})
	if err != nil {
		t.Fatalf("SyncRosters: %v", err)
	}
	if result.Inserted != 1 {
		t.Fatalf("expected 1 inserted, got %d", result.Inserted)
	}

	feed.AssertExpectations(t)
}

func TestRosterSyncService_DoesNotRetryFailedFeed(t *testing.T) {
	t.Parallel()

	feed := &mockRosterFeed{}
	feed.
		On("FetchAllPlayers", mock.Anything).
		Return(nil, errors.New("upstream 503")).
		Once()

	svc := NewRosterSyncService(memory.NewPlayerRepository(nil), feed, &sequentialIDs{}, nil)
	if _, err := svc.SyncRosters(context.Background(), RosterSyncInput{}); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}

	feed.AssertExpectations(t)
}
