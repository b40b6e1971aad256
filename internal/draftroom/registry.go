// Package draftroom fans draft-state-changed events out to the viewers of
// a draft. It interprets nothing and persists nothing.
package draftroom

import "sync"

type EventType string

const (
	EventPickMade       EventType = "pick_made"
	EventDraftCompleted EventType = "draft_completed"
)

// Event is one draft-state-changed notification.
type Event struct {
	Type         EventType `json:"type"`
	DraftID      string    `json:"draft_id"`
	PickNumber   int       `json:"pick_number,omitempty"`
	MemberID     string    `json:"member_id,omitempty"`
	PlayerID     string    `json:"player_id,omitempty"`
	NextPickerID string    `json:"next_picker_id,omitempty"`
	Status       string    `json:"status"`
}

// Registry tracks the subscriber channels of each draft. Instances are
// injected, not shared globally, so tests can run isolated registries.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]map[chan<- Event]struct{}
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]map[chan<- Event]struct{})}
}

// Subscribe registers ch for the draft's events. The channel should be
// buffered: delivery never blocks, so an unready channel misses events.
func (r *Registry) Subscribe(draftID string, ch chan<- Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[draftID]
	if !ok {
		room = make(map[chan<- Event]struct{})
		r.rooms[draftID] = room
	}
	room[ch] = struct{}{}
}

// Unsubscribe removes ch and drops the draft's entry once its subscriber
// set is empty.
func (r *Registry) Unsubscribe(draftID string, ch chan<- Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[draftID]
	if !ok {
		return
	}
	delete(room, ch)
	if len(room) == 0 {
		delete(r.rooms, draftID)
	}
}

// Broadcast delivers the event to every current subscriber of the draft
// and reports how many received it. A no-op with no subscribers. Sends are
// non-blocking so a slow subscriber drops the event instead of stalling
// the caller.
func (r *Registry) Broadcast(draftID string, ev Event) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	delivered := 0
	for ch := range r.rooms[draftID] {
		select {
		case ch <- ev:
			delivered++
		default:
		}
	}
	return delivered
}

// Subscribers reports the current subscriber count for a draft.
func (r *Registry) Subscribers(draftID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[draftID])
}
