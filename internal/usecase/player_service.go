package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gridiron-league/pairdraft/internal/domain/player"
	"github.com/gridiron-league/pairdraft/internal/domain/pool"
)

const maxPlayerListLimit = 500

type ListPlayersInput struct {
	Position string
	Pool     *int
	Limit    int
}

type PlayerService struct {
	playerRepo player.Repository
}

func NewPlayerService(playerRepo player.Repository) *PlayerService {
	return &PlayerService{playerRepo: playerRepo}
}

func (s *PlayerService) ListPlayers(ctx context.Context, input ListPlayersInput) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	filter := player.ListFilter{Limit: input.Limit}

	if raw := strings.TrimSpace(input.Position); raw != "" {
		pos := player.Position(strings.ToUpper(raw))
		if _, ok := player.AllPositions[pos]; !ok {
			return nil, fmt.Errorf("%w: unknown position=%s", ErrInvalidInput, raw)
		}
		filter.Position = pos
	}

	if input.Pool != nil {
		if *input.Pool < 0 || *input.Pool >= pool.NumPools {
			return nil, fmt.Errorf("%w: pool must be between 0 and %d", ErrInvalidInput, pool.NumPools-1)
		}
		filter.Pool = input.Pool
	}

	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if filter.Limit == 0 || filter.Limit > maxPlayerListLimit {
		filter.Limit = maxPlayerListLimit
	}

	players, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return players, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.Get(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return p, nil
}
