package projector

import (
	"context"
	"sync"

	"roomapp/models"
)

// Watcher subscribes to the booking feed. It delivers the full current
// result set to onChange on every change and returns a cancellation handle.
// The Mongo booking repository's Watch satisfies this signature.
type Watcher func(ctx context.Context, onChange func([]models.Booking)) (cancel func(), err error)

// Session holds the live view state for one signed-in identity. All view
// transitions derive from the subscription callback; the loading flag exists
// solely for spinner display and never forks logic.
type Session struct {
	uid  string
	role string

	mu      sync.Mutex
	view    ViewState
	loading bool
	cancel  func()

	// OnUpdate, when set, is invoked with the fresh view state after every
	// recomputation. Called without the session lock held.
	OnUpdate func(ViewState)
}

// NewSession creates a projector session for the given identity and role.
func NewSession(uid, role string) *Session {
	return &Session{uid: uid, role: role}
}

// Start subscribes the session to the booking feed. The first delivery
// carries the current snapshot, so the view is populated before Start
// returns on a healthy feed.
func (s *Session) Start(ctx context.Context, watch Watcher) error {
	cancel, err := watch(ctx, func(bookings []models.Booking) {
		view := Project(bookings, s.uid, s.role)

		s.mu.Lock()
		s.view = view
		cb := s.OnUpdate
		s.mu.Unlock()

		if cb != nil {
			cb(view)
		}
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	return nil
}

// Stop cancels the subscription.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// View returns the last computed view state.
func (s *Session) View() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetLoading flags an in-flight request for spinner display.
func (s *Session) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// Loading reports whether a request is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
