// Package store tracks one in-flight-or-settled view of a paginated
// collection per entity and applies deterministic merge rules to it.
// Every entity (class, subject, batch, …) gets its own ListStore; the
// stores share nothing and never lock each other.
package store

import (
	"context"
	"sync"

	"github.com/simp-lee/schoolkit/internal/domain"
	"github.com/simp-lee/schoolkit/internal/pkg"
)

// API is the resource client surface the store drives. Satisfied by
// *client.Resource[T].
type API[T domain.Record] interface {
	List(ctx context.Context, q domain.Query) (*domain.Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, dto any) (*T, error)
	Update(ctx context.Context, id string, dto any) (*T, error)
	Delete(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string) (*T, error)
}

// State is a snapshot of the list view.
//
// Loading is true only while a list-affecting request is outstanding.
// Success is a one-shot flag: set by a fulfilled mutation, cleared by
// Reset once the presentation layer has observed it. Error holds the
// last failure's user-presentable message.
type State[T domain.Record] struct {
	Items      []T
	Current    *T
	Loading    bool
	Error      string
	Success    bool
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// ListStore is the asynchronous list-resource state manager for one
// entity. It is process-wide for that entity and safe for concurrent
// use; every view of the entity's list shares the one instance.
//
// Overlapping list fetches are guarded by a request-sequence token: each
// fetch is tagged when issued and its response is applied only if it is
// still the most recently issued one, so a slow stale response can never
// overwrite a newer page. Mutations remain last-write-wins.
type ListStore[T domain.Record] struct {
	mu    sync.Mutex
	api   API[T]
	state State[T]
	seq   uint64
}

// New creates a ListStore over the given resource API.
// Panics if api is nil.
func New[T domain.Record](api API[T]) *ListStore[T] {
	if api == nil {
		panic("store.New: api must not be nil")
	}
	return &ListStore[T]{api: api}
}

// State returns a snapshot. The items slice is copied so callers can
// range over it without holding any lock.
func (s *ListStore[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state
	snapshot.Items = make([]T, len(s.state.Items))
	copy(snapshot.Items, s.state.Items)
	if s.state.Current != nil {
		current := *s.state.Current
		snapshot.Current = &current
	}
	return snapshot
}

// FetchList loads one page and replaces the list state wholesale.
// A response that has been superseded by a newer fetch is discarded.
func (s *ListStore[T]) FetchList(ctx context.Context, q domain.Query) error {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Error = ""
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	page, err := s.api.List(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		// Superseded; the newer fetch owns the state now.
		return err
	}

	s.state.Loading = false
	if err != nil {
		s.state.Error = domain.ErrorMessage(err, "Request failed")
		return err
	}

	s.state.Items = page.Items
	s.state.Total = page.Total
	s.state.Page = page.Page
	s.state.Limit = page.Limit
	s.state.TotalPages = page.TotalPages
	return nil
}

// FetchOne loads a single record into Current. It does not touch
// Loading, which covers list-affecting requests only.
func (s *ListStore[T]) FetchOne(ctx context.Context, id string) error {
	item, err := s.api.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state.Error = domain.ErrorMessage(err, "Request failed")
		return err
	}
	s.state.Current = item
	return nil
}

// Select sets Current locally, e.g. when a row is picked for editing.
func (s *ListStore[T]) Select(item *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Current = item
}

// Create posts a new record and prepends it to the list (most recent
// first), incrementing Total and recomputing TotalPages.
func (s *ListStore[T]) Create(ctx context.Context, dto any) error {
	s.beginMutation()

	item, err := s.api.Create(ctx, dto)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Loading = false
	if err != nil {
		s.state.Error = domain.ErrorMessage(err, "Request failed")
		return err
	}

	s.state.Success = true
	s.state.Items = append([]T{*item}, s.state.Items...)
	s.state.Total++
	s.state.TotalPages = pkg.TotalPages(s.state.Total, s.state.Limit)
	return nil
}

// Update modifies a record and replaces it in place by id. An id not on
// the current page is a silent no-op; the item may live on another page.
// Current is replaced too when it matches.
func (s *ListStore[T]) Update(ctx context.Context, id string, dto any) error {
	s.beginMutation()

	item, err := s.api.Update(ctx, id, dto)
	s.settleReplace(id, item, err)
	return err
}

// ToggleStatus flips a record's active status, mirroring Update's merge
// rule (in-place replace, Success set).
func (s *ListStore[T]) ToggleStatus(ctx context.Context, id string) error {
	s.beginMutation()

	item, err := s.api.ToggleStatus(ctx, id)
	s.settleReplace(id, item, err)
	return err
}

// Delete removes a record. Total is decremented even when the id is not
// on the current page; a matching Current is cleared.
func (s *ListStore[T]) Delete(ctx context.Context, id string) error {
	s.beginMutation()

	err := s.api.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Loading = false
	if err != nil {
		s.state.Error = domain.ErrorMessage(err, "Request failed")
		return err
	}

	s.state.Success = true
	for i, existing := range s.state.Items {
		if existing.RecordID() == id {
			s.state.Items = append(s.state.Items[:i], s.state.Items[i+1:]...)
			break
		}
	}
	if s.state.Total > 0 {
		s.state.Total--
	}
	s.state.TotalPages = pkg.TotalPages(s.state.Total, s.state.Limit)
	if s.state.Current != nil && (*s.state.Current).RecordID() == id {
		s.state.Current = nil
	}
	return nil
}

// Reset clears the transient request state (loading, error, success,
// current) without touching the list. Used when a create/edit modal
// closes.
func (s *ListStore[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Loading = false
	s.state.Error = ""
	s.state.Success = false
	s.state.Current = nil
}

// beginMutation marks a mutation as pending.
func (s *ListStore[T]) beginMutation() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Loading = true
	s.state.Error = ""
	s.state.Success = false
}

// settleReplace applies the fulfilled/rejected transition shared by
// Update and ToggleStatus.
func (s *ListStore[T]) settleReplace(id string, item *T, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Loading = false
	if err != nil {
		s.state.Error = domain.ErrorMessage(err, "Request failed")
		return
	}

	s.state.Success = true
	for i, existing := range s.state.Items {
		if existing.RecordID() == id {
			s.state.Items[i] = *item
			break
		}
	}
	if s.state.Current != nil && (*s.state.Current).RecordID() == id {
		s.state.Current = item
	}
}
