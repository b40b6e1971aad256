package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/gridiron-league/pairdraft/internal/domain/player"
	"github.com/gridiron-league/pairdraft/internal/domain/pool"
	"github.com/gridiron-league/pairdraft/internal/infrastructure/repository/memory"
)

func TestDivisionService_RunDivision(t *testing.T) {
	repo := memory.NewPlayerRepository(memory.SeedPlayers())
	svc := NewDivisionService(repo, pool.DefaultConfig(), nil)
	ctx := context.Background()

	outcome, err := svc.RunDivision(ctx)
	if err != nil {
		t.Fatalf("RunDivision: %v", err)
	}
	if outcome.AssignedCount != 240 {
		t.Fatalf("expected 240 assigned players, got %d", outcome.AssignedCount)
	}
	if len(outcome.Report.Stats) != pool.NumPools {
		t.Fatalf("expected stats for %d pools, got %d", pool.NumPools, len(outcome.Report.Stats))
	}

	assigned, err := repo.CountAssigned(ctx)
	if err != nil {
		t.Fatalf("CountAssigned: %v", err)
	}
	if assigned != 240 {
		t.Fatalf("expected 240 players persisted with assignments, got %d", assigned)
	}

	// Division is one-time.
	if _, err := svc.RunDivision(ctx); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on re-run, got %v", err)
	}
}

func TestDivisionService_RunDivisionTooFewPlayers(t *testing.T) {
	repo := memory.NewPlayerRepository(memory.SeedPlayers()[:100])
	svc := NewDivisionService(repo, pool.DefaultConfig(), nil)

	_, err := svc.RunDivision(context.Background())
	if !errors.Is(err, pool.ErrInsufficientPlayers) {
		t.Fatalf("expected ErrInsufficientPlayers, got %v", err)
	}
}

func TestDivisionService_ListAndGetPools(t *testing.T) {
	repo := memory.NewPlayerRepository(memory.SeedPlayers())
	svc := NewDivisionService(repo, pool.DefaultConfig(), nil)
	ctx := context.Background()

	// Before division every pool is empty.
	if _, err := svc.GetPool(ctx, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before division, got %v", err)
	}

	if _, err := svc.RunDivision(ctx); err != nil {
		t.Fatalf("RunDivision: %v", err)
	}

	summaries, err := svc.ListPools(ctx)
	if err != nil {
		t.Fatalf("ListPools: %v", err)
	}
	if len(summaries) != pool.NumPools {
		t.Fatalf("expected %d summaries, got %d", pool.NumPools, len(summaries))
	}
	total := 0
	for _, s := range summaries {
		// Snake tiers guarantee the 32-player position minimum; leftovers
		// land wherever balance demands.
		if s.PlayerCount < 32 {
			t.Fatalf("pool %d holds %d players, expected at least 32", s.PoolNumber, s.PlayerCount)
		}
		if len(s.Players) != 0 {
			t.Fatalf("pool listing should omit player details")
		}
		total += s.PlayerCount
	}
	if total != 240 {
		t.Fatalf("expected 240 players across pools, got %d", total)
	}

	detail, err := svc.GetPool(ctx, 3)
	if err != nil {
		t.Fatalf("GetPool: %v", err)
	}
	if len(detail.Players) != summaries[3].PlayerCount {
		t.Fatalf("pool detail count %d does not match summary %d", len(detail.Players), summaries[3].PlayerCount)
	}
	for i := 1; i < len(detail.Players); i++ {
		if detail.Players[i].CompositeValue < detail.Players[i-1].CompositeValue {
			t.Fatal("pool players not ordered ascending by value")
		}
	}

	if _, err := svc.GetPool(ctx, 6); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for pool index 6, got %v", err)
	}
}

func TestPlayerService_ListFilters(t *testing.T) {
	repo := memory.NewPlayerRepository(memory.SeedPlayers())
	divisionSvc := NewDivisionService(repo, pool.DefaultConfig(), nil)
	svc := NewPlayerService(repo)
	ctx := context.Background()

	if _, err := divisionSvc.RunDivision(ctx); err != nil {
		t.Fatalf("RunDivision: %v", err)
	}

	qbs, err := svc.ListPlayers(ctx, ListPlayersInput{Position: "qb"})
	if err != nil {
		t.Fatalf("ListPlayers by position: %v", err)
	}
	if len(qbs) != 30 {
		t.Fatalf("expected 30 quarterbacks, got %d", len(qbs))
	}
	for _, p := range qbs {
		if p.Position != player.PositionQuarterback {
			t.Fatalf("position filter leaked %s", p.Position)
		}
	}

	poolIdx := 2
	members, err := svc.ListPlayers(ctx, ListPlayersInput{Pool: &poolIdx})
	if err != nil {
		t.Fatalf("ListPlayers by pool: %v", err)
	}
	if len(members) < 32 {
		t.Fatalf("expected at least 32 players in pool 2, got %d", len(members))
	}
	for _, p := range members {
		if !p.InPool(poolIdx) {
			t.Fatalf("pool filter leaked player %s", p.ID)
		}
	}

	if _, err := svc.ListPlayers(ctx, ListPlayersInput{Position: "GOALIE"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown position, got %v", err)
	}

	bad := 9
	if _, err := svc.ListPlayers(ctx, ListPlayersInput{Pool: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for pool 9, got %v", err)
	}
}
