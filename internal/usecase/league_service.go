package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gridiron-league/pairdraft/internal/domain/league"
	"github.com/gridiron-league/pairdraft/internal/platform/id"
	"github.com/gridiron-league/pairdraft/internal/platform/random"
)

type CreateLeagueInput struct {
	Name              string
	CommissionerID    string
	CommissionerEmail string
	CommissionerName  string
}

type JoinLeagueInput struct {
	LeagueID    string
	UserID      string
	Email       string
	DisplayName string
}

type LeagueDetail struct {
	League  league.League   `json:"league"`
	Members []league.Member `json:"members"`
	Pairs   []league.Pair   `json:"pairs,omitempty"`
}

// PairingDetail is the outcome of the one-time pairing run.
type PairingDetail struct {
	Pairs []PairWithMembers `json:"pairs"`
}

type PairWithMembers struct {
	Pair    league.Pair     `json:"pair"`
	Members []league.Member `json:"members"`
}

type LeagueService struct {
	leagueRepo league.Repository
	idgen      id.Generator
	shuffler   random.Shuffler
	logger     *slog.Logger
	now        func() time.Time
}

func NewLeagueService(
	leagueRepo league.Repository,
	idgen id.Generator,
	shuffler random.Shuffler,
	logger *slog.Logger,
) *LeagueService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LeagueService{
		leagueRepo: leagueRepo,
		idgen:      idgen,
		shuffler:   shuffler,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateLeague opens a new league with the commissioner as its first
// member.
func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (LeagueDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.CommissionerID = strings.TrimSpace(input.CommissionerID)
	input.CommissionerName = strings.TrimSpace(input.CommissionerName)

	if input.Name == "" {
		return LeagueDetail{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	if input.CommissionerID == "" {
		return LeagueDetail{}, fmt.Errorf("%w: commissioner id is required", ErrInvalidInput)
	}
	if input.CommissionerName == "" {
		input.CommissionerName = input.CommissionerID
	}

	leagueID, err := s.idgen.NewID()
	if err != nil {
		return LeagueDetail{}, fmt.Errorf("generate league id: %w", err)
	}
	memberID, err := s.idgen.NewID()
	if err != nil {
		return LeagueDetail{}, fmt.Errorf("generate member id: %w", err)
	}

	now := s.now().UTC()
	newLeague := league.League{
		ID:             leagueID,
		Name:           input.Name,
		CommissionerID: input.CommissionerID,
		Status:         league.StatusSetup,
		Settings:       league.DefaultSettings(),
		CreatedAt:      now,
	}
	if err := newLeague.Validate(); err != nil {
		return LeagueDetail{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	commissioner := league.Member{
		ID:          memberID,
		LeagueID:    leagueID,
		UserID:      input.CommissionerID,
		Email:       strings.TrimSpace(input.CommissionerEmail),
		DisplayName: input.CommissionerName,
		JoinedAt:    now,
	}

	if err := s.leagueRepo.CreateLeague(ctx, newLeague); err != nil {
		return LeagueDetail{}, fmt.Errorf("create league: %w", err)
	}
	if err := s.leagueRepo.AddMember(ctx, commissioner); err != nil {
		return LeagueDetail{}, fmt.Errorf("add commissioner member: %w", err)
	}

	s.logger.InfoContext(ctx, "league created",
		"league_id", leagueID,
		"commissioner_id", input.CommissionerID,
	)

	return LeagueDetail{
		League:  newLeague,
		Members: []league.Member{commissioner},
	}, nil
}

// JoinLeague adds a member to a league still in signup. Leagues cap at
// twelve members and a user joins at most once.
func (s *LeagueService) JoinLeague(ctx context.Context, input JoinLeagueInput) (league.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.JoinLeague")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.UserID = strings.TrimSpace(input.UserID)
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	if input.LeagueID == "" {
		return league.Member{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.UserID == "" {
		return league.Member{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.DisplayName == "" {
		input.DisplayName = input.UserID
	}

	current, exists, err := s.leagueRepo.GetLeague(ctx, input.LeagueID)
	if err != nil {
		return league.Member{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.Member{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}
	if current.Status != league.StatusSetup {
		return league.Member{}, fmt.Errorf("%w: league=%s is no longer accepting members", ErrConflict, input.LeagueID)
	}

	members, err := s.leagueRepo.ListMembers(ctx, input.LeagueID)
	if err != nil {
		return league.Member{}, fmt.Errorf("list members: %w", err)
	}
	if len(members) >= league.MaxMembers {
		return league.Member{}, fmt.Errorf("%w: league=%s is full", ErrConflict, input.LeagueID)
	}
	for _, m := range members {
		if m.UserID == input.UserID {
			return league.Member{}, fmt.Errorf("%w: user=%s already joined league=%s", ErrConflict, input.UserID, input.LeagueID)
		}
	}

	memberID, err := s.idgen.NewID()
	if err != nil {
		return league.Member{}, fmt.Errorf("generate member id: %w", err)
	}

	member := league.Member{
		ID:          memberID,
		LeagueID:    input.LeagueID,
		UserID:      input.UserID,
		Email:       strings.TrimSpace(input.Email),
		DisplayName: input.DisplayName,
		JoinedAt:    s.now().UTC(),
	}
	if err := member.Validate(); err != nil {
		return league.Member{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.leagueRepo.AddMember(ctx, member); err != nil {
		return league.Member{}, fmt.Errorf("add member: %w", err)
	}

	s.logger.InfoContext(ctx, "member joined league",
		"league_id", input.LeagueID,
		"member_id", memberID,
		"member_count", len(members)+1,
	)

	return member, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (LeagueDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return LeagueDetail{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	current, exists, err := s.leagueRepo.GetLeague(ctx, leagueID)
	if err != nil {
		return LeagueDetail{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return LeagueDetail{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	members, err := s.leagueRepo.ListMembers(ctx, leagueID)
	if err != nil {
		return LeagueDetail{}, fmt.Errorf("list members: %w", err)
	}
	pairs, err := s.leagueRepo.ListPairs(ctx, leagueID)
	if err != nil {
		return LeagueDetail{}, fmt.Errorf("list pairs: %w", err)
	}

	return LeagueDetail{
		League:  current,
		Members: members,
		Pairs:   pairs,
	}, nil
}

// CreatePairs randomly splits a full twelve-member league into six pairs
// and marks the league draft-ready. Pairing runs exactly once; a league
// past setup is a conflict.
func (s *LeagueService) CreatePairs(ctx context.Context, leagueID string) (PairingDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreatePairs")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return PairingDetail{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	current, exists, err := s.leagueRepo.GetLeague(ctx, leagueID)
	if err != nil {
		return PairingDetail{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return PairingDetail{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if current.Status != league.StatusSetup {
		return PairingDetail{}, fmt.Errorf("%w: league=%s pairs already created", ErrConflict, leagueID)
	}

	members, err := s.leagueRepo.ListMembers(ctx, leagueID)
	if err != nil {
		return PairingDetail{}, fmt.Errorf("list members: %w", err)
	}

	pairing, err := league.BuildPairs(leagueID, members, s.shuffler.Shuffle, s.idgen.NewID)
	if err != nil {
		return PairingDetail{}, fmt.Errorf("build pairs: %w", err)
	}

	now := s.now().UTC()
	for i := range pairing.Pairs {
		pairing.Pairs[i].CreatedAt = now
	}

	if err := s.leagueRepo.SavePairs(ctx, leagueID, pairing, league.StatusDraftReady); err != nil {
		return PairingDetail{}, fmt.Errorf("save pairs: %w", err)
	}

	s.logger.InfoContext(ctx, "league paired",
		"league_id", leagueID,
		"pairs", len(pairing.Pairs),
	)

	return s.pairingDetail(pairing, members), nil
}

func (s *LeagueService) pairingDetail(pairing league.Pairing, members []league.Member) PairingDetail {
	membersByPair := make(map[string][]league.Member, len(pairing.Pairs))
	for _, m := range members {
		pairID, ok := pairing.MemberPair[m.ID]
		if !ok {
			continue
		}
		bound := m
		bound.PairID = &pairID
		membersByPair[pairID] = append(membersByPair[pairID], bound)
	}

	detail := PairingDetail{Pairs: make([]PairWithMembers, 0, len(pairing.Pairs))}
	for _, p := range pairing.Pairs {
		detail.Pairs = append(detail.Pairs, PairWithMembers{
			Pair:    p,
			Members: membersByPair[p.ID],
		})
	}
	return detail
}
