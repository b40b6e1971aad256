package usecase

import (
	"context"
	"fmt"
	"log/slog"

	concpool "github.com/sourcegraph/conc/pool"

	"github.com/gridiron-league/pairdraft/internal/domain/player"
	"github.com/gridiron-league/pairdraft/internal/domain/pool"
)

const (
	divisionPersistBatchSize = 50
	divisionPersistWorkers   = 4
)

// DivisionOutcome is what a division run reports back: how many players
// were placed and how balanced the pools came out.
type DivisionOutcome struct {
	AssignedCount int         `json:"assigned_count"`
	Report        pool.Report `json:"report"`
}

// PoolSummary is one pool's membership and value for read endpoints.
type PoolSummary struct {
	PoolNumber  int             `json:"pool_number"`
	PlayerCount int             `json:"player_count"`
	TotalValue  float64         `json:"total_value"`
	Players     []player.Player `json:"players,omitempty"`
}

type DivisionService struct {
	playerRepo player.Repository
	cfg        pool.Config
	logger     *slog.Logger
}

func NewDivisionService(playerRepo player.Repository, cfg pool.Config, logger *slog.Logger) *DivisionService {
	if logger == nil {
		logger = slog.Default()
	}

	return &DivisionService{
		playerRepo: playerRepo,
		cfg:        cfg,
		logger:     logger,
	}
}

// RunDivision partitions the whole player population into the six pools
// and persists the assignments. Division is one-time: re-running against
// an already divided population is a conflict, not a re-shuffle. An
// unbalanced outcome is persisted anyway and surfaced through the report.
func (s *DivisionService) RunDivision(ctx context.Context) (DivisionOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DivisionService.RunDivision")
	defer span.End()

	assigned, err := s.playerRepo.CountAssigned(ctx)
	if err != nil {
		return DivisionOutcome{}, fmt.Errorf("count assigned players: %w", err)
	}
	if assigned > 0 {
		return DivisionOutcome{}, fmt.Errorf("%w: pools already divided (%d players assigned)", ErrConflict, assigned)
	}

	players, err := s.playerRepo.List(ctx, player.ListFilter{})
	if err != nil {
		return DivisionOutcome{}, fmt.Errorf("list players for division: %w", err)
	}

	res, err := pool.Divide(players, s.cfg)
	if err != nil {
		return DivisionOutcome{}, fmt.Errorf("divide players: %w", err)
	}

	rows := res.Assignments()
	writers := concpool.New().
		WithMaxGoroutines(divisionPersistWorkers).
		WithErrors().
		WithContext(ctx)
	for start := 0; start < len(rows); start += divisionPersistBatchSize {
		end := min(start+divisionPersistBatchSize, len(rows))
		chunk := rows[start:end]
		writers.Go(func(ctx context.Context) error {
			return s.playerRepo.ApplyAssignments(ctx, chunk)
		})
	}
	if err := writers.Wait(); err != nil {
		return DivisionOutcome{}, fmt.Errorf("persist pool assignments: %w", err)
	}

	report := pool.Validate(res, s.cfg)
	for _, warning := range report.Warnings {
		s.logger.WarnContext(ctx, "pool balance warning", "warning", warning)
	}
	s.logger.InfoContext(ctx, "division complete",
		"assigned", len(rows),
		"balanced", report.Balanced,
	)

	return DivisionOutcome{
		AssignedCount: len(rows),
		Report:        report,
	}, nil
}

// ListPools summarizes every pool without player details.
func (s *DivisionService) ListPools(ctx context.Context) ([]PoolSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DivisionService.ListPools")
	defer span.End()

	out := make([]PoolSummary, 0, s.cfg.NumPools)
	for idx := 0; idx < s.cfg.NumPools; idx++ {
		players, err := s.playerRepo.ListByPool(ctx, idx)
		if err != nil {
			return nil, fmt.Errorf("list pool %d: %w", idx, err)
		}
		out = append(out, summarizePool(idx, players, false))
	}

	return out, nil
}

// GetPool returns one pool with its full membership, ordered ascending by
// composite value.
func (s *DivisionService) GetPool(ctx context.Context, poolNumber int) (PoolSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DivisionService.GetPool")
	defer span.End()

	if poolNumber < 0 || poolNumber >= s.cfg.NumPools {
		return PoolSummary{}, fmt.Errorf("%w: pool must be between 0 and %d", ErrInvalidInput, s.cfg.NumPools-1)
	}

	players, err := s.playerRepo.ListByPool(ctx, poolNumber)
	if err != nil {
		return PoolSummary{}, fmt.Errorf("list pool %d: %w", poolNumber, err)
	}
	if len(players) == 0 {
		return PoolSummary{}, fmt.Errorf("%w: pool %d has no players; division has not run", ErrNotFound, poolNumber)
	}

	return summarizePool(poolNumber, players, true), nil
}

func summarizePool(idx int, players []player.Player, includePlayers bool) PoolSummary {
	summary := PoolSummary{
		PoolNumber:  idx,
		PlayerCount: len(players),
	}
	for _, p := range players {
		summary.TotalValue += p.CompositeValue
	}
	if includePlayers {
		summary.Players = players
	}
	return summary
}
