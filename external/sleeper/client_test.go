package sleeper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gridiron-league/pairdraft/internal/platform/logging"
	"github.com/gridiron-league/pairdraft/internal/usecase"
)

const playersPayload = `{
	"4034": {"player_id": "4034", "full_name": "Patrick Mahomes", "team": "KC", "position": "QB", "age": 31, "status": "Active"},
	"6786": {"player_id": "6786", "full_name": "Justin Jefferson", "team": "MIN", "position": "WR", "age": 27, "status": "Active"},
	"KC": {"player_id": "KC", "first_name": "Kansas City", "last_name": "Chiefs", "team": "KC", "position": "DEF"}
}`

func newTestClient(baseURL string, maxRetries int) *Client {
	return NewClient(ClientConfig{
		BaseURL:    baseURL,
		MaxRetries: maxRetries,
		Logger:     logging.NewNop(),
	})
}

func TestFetchAllPlayers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/players/nfl" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(playersPayload))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0)
	players, err := client.FetchAllPlayers(context.Background())
	if err != nil {
		t.Fatalf("FetchAllPlayers: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(players))
	}

	// Sorted by sleeper id: "4034" < "6786" < "KC".
	if players[0].Name != "Patrick Mahomes" || players[0].Position != "QB" {
		t.Fatalf("unexpected first player: %+v", players[0])
	}
	if players[2].Name != "Kansas City Chiefs" {
		t.Fatalf("expected defense name from first/last fallback, got %q", players[2].Name)
	}
}

func TestFetchAllPlayers_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(playersPayload))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 2)
	players, err := client.FetchAllPlayers(context.Background())
	if err != nil {
		t.Fatalf("FetchAllPlayers: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("expected 3 players after retry, got %d", len(players))
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 requests, got %d", calls.Load())
	}
}

func TestFetchAllPlayers_NonRetryableStatusFailsFast(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 3)
	if _, err := client.FetchAllPlayers(context.Background()); err == nil {
		t.Fatal("expected error for 404 response")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single request for non-retryable status, got %d", calls.Load())
	}
}

func TestFetchAllPlayers_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL:          srv.URL,
		MaxRetries:       0,
		BreakerThreshold: 2,
		Logger:           logging.NewNop(),
	})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := client.FetchAllPlayers(ctx); err == nil {
			t.Fatalf("attempt %d: expected failure", i)
		}
	}

	_, err := client.FetchAllPlayers(ctx)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable from open breaker, got %v", err)
	}
}
