package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/gridiron-league/pairdraft/internal/domain/draft"
	"github.com/gridiron-league/pairdraft/internal/domain/league"
	"github.com/gridiron-league/pairdraft/internal/domain/player"
	"github.com/gridiron-league/pairdraft/internal/draftroom"
	"github.com/gridiron-league/pairdraft/internal/platform/id"
)

type MakePickInput struct {
	DraftID  string
	MemberID string
	PlayerID string
}

// PickResult is a successful pick plus the draft state it produced.
type PickResult struct {
	Pick  draft.Pick  `json:"pick"`
	Draft draft.Draft `json:"draft"`
}

// DraftDetail is the full room view: draft state, pick history, who is in
// the pair, and what is still on the board.
type DraftDetail struct {
	Draft            draft.Draft     `json:"draft"`
	Members          []league.Member `json:"members"`
	Picks            []draft.Pick    `json:"picks"`
	AvailablePlayers []player.Player `json:"available_players"`
}

// DraftedPlayer joins a pick with the player it claimed.
type DraftedPlayer struct {
	PickNumber int           `json:"pick_number"`
	Player     player.Player `json:"player"`
}

type MemberRoster struct {
	MemberID    string          `json:"member_id"`
	DisplayName string          `json:"display_name"`
	Players     []DraftedPlayer `json:"players"`
}

// DraftNotifier fans draft events out to room subscribers. Broadcasting is
// best effort; delivery failures never fail a pick.
type DraftNotifier interface {
	Broadcast(draftID string, ev draftroom.Event) int
}

type DraftService struct {
	draftRepo  draft.Repository
	leagueRepo league.Repository
	playerRepo player.Repository
	notifier   DraftNotifier
	idgen      id.Generator
	clock      clockwork.Clock
	logger     *slog.Logger
}

func NewDraftService(
	draftRepo draft.Repository,
	leagueRepo league.Repository,
	playerRepo player.Repository,
	notifier DraftNotifier,
	idgen id.Generator,
	clock clockwork.Clock,
	logger *slog.Logger,
) *DraftService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DraftService{
		draftRepo:  draftRepo,
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		notifier:   notifier,
		idgen:      idgen,
		clock:      clock,
		logger:     logger,
	}
}

// StartDraft opens the head-to-head draft for a pair. One draft per pair,
// ever; a second start is a conflict.
func (s *DraftService) StartDraft(ctx context.Context, pairID string) (draft.Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.StartDraft")
	defer span.End()

	pairID = strings.TrimSpace(pairID)
	if pairID == "" {
		return draft.Draft{}, fmt.Errorf("%w: pair id is required", ErrInvalidInput)
	}

	if _, exists, err := s.leagueRepo.GetPair(ctx, pairID); err != nil {
		return draft.Draft{}, fmt.Errorf("get pair: %w", err)
	} else if !exists {
		return draft.Draft{}, fmt.Errorf("%w: pair=%s", ErrNotFound, pairID)
	}

	if _, exists, err := s.draftRepo.GetByPair(ctx, pairID); err != nil {
		return draft.Draft{}, fmt.Errorf("get draft by pair: %w", err)
	} else if exists {
		return draft.Draft{}, fmt.Errorf("%w: pair=%s", draft.ErrAlreadyStarted, pairID)
	}

	members, err := s.leagueRepo.ListPairMembers(ctx, pairID)
	if err != nil {
		return draft.Draft{}, fmt.Errorf("list pair members: %w", err)
	}
	memberIDs := make([]string, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.ID)
	}

	draftID, err := s.idgen.NewID()
	if err != nil {
		return draft.Draft{}, fmt.Errorf("generate draft id: %w", err)
	}

	d, err := draft.Start(draftID, pairID, memberIDs, s.clock.Now().UTC())
	if err != nil {
		return draft.Draft{}, err
	}
	if err := s.draftRepo.Create(ctx, d); err != nil {
		return draft.Draft{}, fmt.Errorf("create draft: %w", err)
	}

	s.logger.InfoContext(ctx, "draft started",
		"draft_id", draftID,
		"pair_id", pairID,
		"first_picker", d.CurrentPickerID,
	)

	return d, nil
}

// MakePick submits one pick. Turn order, pool membership, and
// availability are all enforced under the repository's per-draft lock, so
// two racing picks can never both land on the same state.
func (s *DraftService) MakePick(ctx context.Context, input MakePickInput) (PickResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.MakePick")
	defer span.End()

	input.DraftID = strings.TrimSpace(input.DraftID)
	input.MemberID = strings.TrimSpace(input.MemberID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)

	if input.DraftID == "" {
		return PickResult{}, fmt.Errorf("%w: draft id is required", ErrInvalidInput)
	}
	if input.MemberID == "" {
		return PickResult{}, fmt.Errorf("%w: member id is required", ErrInvalidInput)
	}
	if input.PlayerID == "" {
		return PickResult{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	current, exists, err := s.draftRepo.Get(ctx, input.DraftID)
	if err != nil {
		return PickResult{}, fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return PickResult{}, fmt.Errorf("%w: draft=%s", ErrNotFound, input.DraftID)
	}

	// Screen state and turn on the read snapshot before touching the
	// player at all; ApplyPick re-checks both under the pick lock.
	if !current.Active() {
		return PickResult{}, fmt.Errorf("%w: draft=%s", draft.ErrNotActive, input.DraftID)
	}
	if current.CurrentPickerID != input.MemberID {
		return PickResult{}, fmt.Errorf("%w: member=%s", draft.ErrNotYourTurn, input.MemberID)
	}

	// The pair, its members, and the player's pool assignment are all
	// immutable once a draft exists, so loading them outside the pick lock
	// is safe.
	pair, exists, err := s.leagueRepo.GetPair(ctx, current.PairID)
	if err != nil {
		return PickResult{}, fmt.Errorf("get pair: %w", err)
	}
	if !exists {
		return PickResult{}, fmt.Errorf("%w: pair=%s", ErrNotFound, current.PairID)
	}

	members, err := s.leagueRepo.ListPairMembers(ctx, current.PairID)
	if err != nil {
		return PickResult{}, fmt.Errorf("list pair members: %w", err)
	}
	if len(members) != 2 {
		return PickResult{}, fmt.Errorf("%w: pair=%s", draft.ErrPairIncomplete, current.PairID)
	}
	otherMemberID := members[0].ID
	if input.MemberID == members[0].ID {
		otherMemberID = members[1].ID
	}

	chosen, exists, err := s.playerRepo.Get(ctx, input.PlayerID)
	if err != nil {
		return PickResult{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return PickResult{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
	}

	pick, updated, err := s.draftRepo.SubmitPick(ctx, input.DraftID,
		func(d draft.Draft, picks []draft.Pick) (draft.Pick, draft.Draft, error) {
			return draft.ApplyPick(d, picks, input.MemberID, chosen, pair.PoolNumber, otherMemberID, s.clock.Now().UTC())
		})
	if err != nil {
		return PickResult{}, err
	}

	s.broadcast(ctx, pick, updated)

	return PickResult{Pick: pick, Draft: updated}, nil
}

func (s *DraftService) broadcast(ctx context.Context, pick draft.Pick, d draft.Draft) {
	if s.notifier == nil {
		return
	}

	delivered := s.notifier.Broadcast(d.ID, draftroom.Event{
		Type:         draftroom.EventPickMade,
		DraftID:      d.ID,
		PickNumber:   pick.PickNumber,
		MemberID:     pick.MemberID,
		PlayerID:     pick.PlayerID,
		NextPickerID: d.CurrentPickerID,
		Status:       string(d.Status),
	})
	s.logger.DebugContext(ctx, "pick broadcast",
		"draft_id", d.ID,
		"pick_number", pick.PickNumber,
		"delivered", delivered,
	)

	if d.Status == draft.StatusCompleted {
		s.notifier.Broadcast(d.ID, draftroom.Event{
			Type:    draftroom.EventDraftCompleted,
			DraftID: d.ID,
			Status:  string(d.Status),
		})
	}
}

// GetDraftDetail assembles the room view. Available players are the
// pair's pool minus everything already picked, cheapest first.
func (s *DraftService) GetDraftDetail(ctx context.Context, draftID string) (DraftDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.GetDraftDetail")
	defer span.End()

	current, picks, pair, members, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return DraftDetail{}, err
	}

	poolPlayers, err := s.playerRepo.ListByPool(ctx, pair.PoolNumber)
	if err != nil {
		return DraftDetail{}, fmt.Errorf("list pool %d: %w", pair.PoolNumber, err)
	}

	picked := make(map[string]struct{}, len(picks))
	for _, p := range picks {
		picked[p.PlayerID] = struct{}{}
	}
	available := make([]player.Player, 0, len(poolPlayers))
	for _, p := range poolPlayers {
		if _, taken := picked[p.ID]; taken {
			continue
		}
		available = append(available, p)
	}

	return DraftDetail{
		Draft:            current,
		Members:          members,
		Picks:            picks,
		AvailablePlayers: available,
	}, nil
}

// GetDraftRosters groups a draft's picks per member in pick order.
func (s *DraftService) GetDraftRosters(ctx context.Context, draftID string) ([]MemberRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.GetDraftRosters")
	defer span.End()

	_, picks, _, members, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	rosters := make([]MemberRoster, 0, len(members))
	byMember := make(map[string]*MemberRoster, len(members))
	for _, m := range members {
		rosters = append(rosters, MemberRoster{
			MemberID:    m.ID,
			DisplayName: m.DisplayName,
			Players:     []DraftedPlayer{},
		})
		byMember[m.ID] = &rosters[len(rosters)-1]
	}

	for _, pick := range picks {
		roster, ok := byMember[pick.MemberID]
		if !ok {
			continue
		}
		p, exists, err := s.playerRepo.Get(ctx, pick.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("get picked player: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: picked player=%s missing", ErrNotFound, pick.PlayerID)
		}
		roster.Players = append(roster.Players, DraftedPlayer{
			PickNumber: pick.PickNumber,
			Player:     p,
		})
	}

	return rosters, nil
}

func (s *DraftService) loadDraft(ctx context.Context, draftID string) (draft.Draft, []draft.Pick, league.Pair, []league.Member, error) {
	draftID = strings.TrimSpace(draftID)
	if draftID == "" {
		return draft.Draft{}, nil, league.Pair{}, nil, fmt.Errorf("%w: draft id is required", ErrInvalidInput)
	}

	current, exists, err := s.draftRepo.Get(ctx, draftID)
	if err != nil {
		return draft.Draft{}, nil, league.Pair{}, nil, fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return draft.Draft{}, nil, league.Pair{}, nil, fmt.Errorf("%w: draft=%s", ErrNotFound, draftID)
	}

	picks, err := s.draftRepo.ListPicks(ctx, draftID)
	if err != nil {
		return draft.Draft{}, nil, league.Pair{}, nil, fmt.Errorf("list picks: %w", err)
	}

	pair, exists, err := s.leagueRepo.GetPair(ctx, current.PairID)
	if err != nil {
		return draft.Draft{}, nil, league.Pair{}, nil, fmt.Errorf("get pair: %w", err)
	}
	if !exists {
		return draft.Draft{}, nil, league.Pair{}, nil, fmt.Errorf("%w: pair=%s", ErrNotFound, current.PairID)
	}

	members, err := s.leagueRepo.ListPairMembers(ctx, current.PairID)
	if err != nil {
		return draft.Draft{}, nil, league.Pair{}, nil, fmt.Errorf("list pair members: %w", err)
	}

	return current, picks, pair, members, nil
}
