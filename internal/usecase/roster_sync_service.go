package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/gridiron-league/pairdraft/internal/domain/player"
	"github.com/gridiron-league/pairdraft/internal/platform/id"
)

const (
	rosterSyncBatchSize  = 200
	rosterSyncMaxWorkers = 4
)

// FeedPlayer is one roster entry as the external feed reports it, before
// any domain mapping.
type FeedPlayer struct {
	SleeperID string
	Name      string
	Team      string
	Position  string
	Age       int
	Status    string
}

// RosterFeed is the external NFL roster source.
type RosterFeed interface {
	FetchAllPlayers(ctx context.Context) ([]FeedPlayer, error)
}

type RosterSyncInput struct {
	MaxWorkers int
}

type RosterSyncResult struct {
	Fetched     int   `json:"fetched"`
	Upserted    int   `json:"upserted"`
	Inserted    int   `json:"inserted"`
	Skipped     int   `json:"skipped"`
	WorkerCount int   `json:"worker_count"`
	DurationMs  int64 `json:"duration_ms"`
}

type RosterSyncService struct {
	playerRepo player.Repository
	feed       RosterFeed
	idgen      id.Generator
	logger     *slog.Logger
	now        func() time.Time
}

func NewRosterSyncService(
	playerRepo player.Repository,
	feed RosterFeed,
	idgen id.Generator,
	logger *slog.Logger,
) *RosterSyncService {
	if logger == nil {
		logger = slog.Default()
	}

	return &RosterSyncService{
		playerRepo: playerRepo,
		feed:       feed,
		idgen:      idgen,
		logger:     logger,
		now:        time.Now,
	}
}

// SyncRosters pulls the full roster feed and upserts it into the player
// population. Entries with unknown or missing positions are skipped, not
// errors; the feed carries dozens of position codes outside the fantasy
// lineup. Rank signals and pool assignments of existing players survive
// the refresh.
func (s *RosterSyncService) SyncRosters(ctx context.Context, input RosterSyncInput) (RosterSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterSyncService.SyncRosters")
	defer span.End()

	if s.feed == nil {
		return RosterSyncResult{}, fmt.Errorf("%w: roster feed is not configured", ErrDependencyUnavailable)
	}

	start := s.now()

	feedPlayers, err := s.feed.FetchAllPlayers(ctx)
	if err != nil {
		return RosterSyncResult{}, fmt.Errorf("%w: fetch roster feed: %v", ErrDependencyUnavailable, err)
	}

	candidates := make([]player.Player, 0, len(feedPlayers))
	skipped := 0
	now := s.now().UTC()
	for _, fp := range feedPlayers {
		mapped, ok, err := s.mapFeedPlayer(fp, now)
		if err != nil {
			return RosterSyncResult{}, err
		}
		if !ok {
			skipped++
			continue
		}
		candidates = append(candidates, mapped)
	}

	workerCount := normalizeSyncWorkerCount(input.MaxWorkers, len(candidates))

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return RosterSyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var inserted atomic.Int64
	var firstErr atomic.Value
	var workers sync.WaitGroup

	for batchStart := 0; batchStart < len(candidates); batchStart += rosterSyncBatchSize {
		batchEnd := min(batchStart+rosterSyncBatchSize, len(candidates))
		batch := candidates[batchStart:batchEnd]

		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			n, err := s.playerRepo.UpsertBySleeperID(ctx, batch)
			if err != nil {
				firstErr.CompareAndSwap(nil, err)
				return
			}
			inserted.Add(int64(n))
		}); err != nil {
			workers.Done()
			return RosterSyncResult{}, fmt.Errorf("submit batch to worker pool: %w", err)
		}
	}

	workers.Wait()
	if err, ok := firstErr.Load().(error); ok && err != nil {
		return RosterSyncResult{}, fmt.Errorf("upsert players: %w", err)
	}

	result := RosterSyncResult{
		Fetched:     len(feedPlayers),
		Upserted:    len(candidates),
		Inserted:    int(inserted.Load()),
		Skipped:     skipped,
		WorkerCount: workerCount,
		DurationMs:  time.Since(start).Milliseconds(),
	}

	s.logger.InfoContext(ctx, "roster sync complete",
		"fetched", result.Fetched,
		"upserted", result.Upserted,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
		"duration_ms", result.DurationMs,
	)

	return result, nil
}

// mapFeedPlayer converts one feed entry to the domain shape. The returned
// ID is only used when the sleeper id is new; on refresh the repository
// keeps the existing row's id.
func (s *RosterSyncService) mapFeedPlayer(fp FeedPlayer, now time.Time) (player.Player, bool, error) {
	sleeperID := strings.TrimSpace(fp.SleeperID)
	name := strings.TrimSpace(fp.Name)
	if sleeperID == "" || name == "" {
		return player.Player{}, false, nil
	}

	pos := player.Position(strings.ToUpper(strings.TrimSpace(fp.Position)))
	if _, ok := player.AllPositions[pos]; !ok {
		return player.Player{}, false, nil
	}

	playerID, err := s.idgen.NewID()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("generate player id: %w", err)
	}

	return player.Player{
		ID:        playerID,
		SleeperID: sleeperID,
		Name:      name,
		Team:      strings.ToUpper(strings.TrimSpace(fp.Team)),
		Position:  pos,
		Age:       fp.Age,
		Status:    strings.TrimSpace(fp.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}, true, nil
}

func normalizeSyncWorkerCount(value int, candidateCount int) int {
	if candidateCount <= 0 {
		return 1
	}
	if value <= 0 || value > rosterSyncMaxWorkers {
		value = rosterSyncMaxWorkers
	}
	batches := (candidateCount + rosterSyncBatchSize - 1) / rosterSyncBatchSize
	if value > batches {
		value = batches
	}
	return value
}
