package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/gridiron-league/pairdraft/internal/domain/draft"
)

type DraftRepository struct {
	mu     sync.RWMutex
	drafts map[string]draft.Draft
	byPair map[string]string
	picks  map[string][]draft.Pick
	// pickLocks serializes SubmitPick per draft so decide callbacks never
	// run concurrently against the same draft.
	pickLocks map[string]*sync.Mutex
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{
		drafts:    make(map[string]draft.Draft),
		byPair:    make(map[string]string),
		picks:     make(map[string][]draft.Pick),
		pickLocks: make(map[string]*sync.Mutex),
	}
}

func (r *DraftRepository) Create(_ context.Context, d draft.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drafts[d.ID]; exists {
		return fmt.Errorf("draft %s already exists", d.ID)
	}
	if _, exists := r.byPair[d.PairID]; exists {
		return fmt.Errorf("pair %s already has a draft", d.PairID)
	}

	r.drafts[d.ID] = d
	r.byPair[d.PairID] = d.ID
	r.pickLocks[d.ID] = &sync.Mutex{}

	return nil
}

func (r *DraftRepository) Get(_ context.Context, draftID string) (draft.Draft, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drafts[draftID]
	return d, ok, nil
}

func (r *DraftRepository) GetByPair(_ context.Context, pairID string) (draft.Draft, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	draftID, ok := r.byPair[pairID]
	if !ok {
		return draft.Draft{}, false, nil
	}
	d, ok := r.drafts[draftID]

	return d, ok, nil
}

func (r *DraftRepository) ListPicks(_ context.Context, draftID string) ([]draft.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	picks := r.picks[draftID]
	out := make([]draft.Pick, len(picks))
	copy(out, picks)

	return out, nil
}

func (r *DraftRepository) SubmitPick(_ context.Context, draftID string, decide draft.DecideFunc) (draft.Pick, draft.Draft, error) {
	r.mu.RLock()
	lock, ok := r.pickLocks[draftID]
	r.mu.RUnlock()
	if !ok {
		return draft.Pick{}, draft.Draft{}, draft.ErrNotFound
	}

	lock.Lock()
	defer lock.Unlock()

	r.mu.RLock()
	d := r.drafts[draftID]
	picks := make([]draft.Pick, len(r.picks[draftID]))
	copy(picks, r.picks[draftID])
	r.mu.RUnlock()

	pick, updated, err := decide(d, picks)
	if err != nil {
		return draft.Pick{}, draft.Draft{}, err
	}

	r.mu.Lock()
	r.picks[draftID] = append(r.picks[draftID], pick)
	r.drafts[draftID] = updated
	r.mu.Unlock()

	return pick, updated, nil
}
