package store

import (
	"context"
	"errors"
	"testing"

	"github.com/simp-lee/schoolkit/internal/domain"
)

// fakeAPI implements API[domain.Class] with per-call function hooks.
type fakeAPI struct {
	listFn   func(ctx context.Context, q domain.Query) (*domain.Page[domain.Class], error)
	getFn    func(ctx context.Context, id string) (*domain.Class, error)
	createFn func(ctx context.Context, dto any) (*domain.Class, error)
	updateFn func(ctx context.Context, id string, dto any) (*domain.Class, error)
	deleteFn func(ctx context.Context, id string) error
	toggleFn func(ctx context.Context, id string) (*domain.Class, error)
}

func (f *fakeAPI) List(ctx context.Context, q domain.Query) (*domain.Page[domain.Class], error) {
	return f.listFn(ctx, q)
}

func (f *fakeAPI) Get(ctx context.Context, id string) (*domain.Class, error) {
	return f.getFn(ctx, id)
}

func (f *fakeAPI) Create(ctx context.Context, dto any) (*domain.Class, error) {
	return f.createFn(ctx, dto)
}

func (f *fakeAPI) Update(ctx context.Context, id string, dto any) (*domain.Class, error) {
	return f.updateFn(ctx, id, dto)
}

func (f *fakeAPI) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeAPI) ToggleStatus(ctx context.Context, id string) (*domain.Class, error) {
	return f.toggleFn(ctx, id)
}

func cls(id, name string) domain.Class {
	return domain.Class{ID: id, Name: name, IsActive: true}
}

func pageOf(total, page, limit int, items ...domain.Class) *domain.Page[domain.Class] {
	totalPages := 0
	if total > 0 && limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return &domain.Page[domain.Class]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// seeded returns a store whose list already holds the given items, with
// Total/Limit set accordingly.
func seeded(t *testing.T, total, limit int, items ...domain.Class) (*ListStore[domain.Class], *fakeAPI) {
	t.Helper()

	api := &fakeAPI{
		listFn: func(context.Context, domain.Query) (*domain.Page[domain.Class], error) {
			return pageOf(total, 1, limit, items...), nil
		},
	}
	s := New[domain.Class](api)
	if err := s.FetchList(context.Background(), domain.Query{}); err != nil {
		t.Fatalf("seed FetchList: %v", err)
	}
	return s, api
}

func TestNew_NilAPIPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("New(nil) did not panic")
		}
	}()
	New[domain.Class](nil)
}

func TestFetchList_ReplacesStateWholesale(t *testing.T) {
	s, api := seeded(t, 2, 10, cls("c1", "Grade 1"), cls("c2", "Grade 2"))

	api.listFn = func(context.Context, domain.Query) (*domain.Page[domain.Class], error) {
		return pageOf(1, 1, 10, cls("c9", "Grade 9")), nil
	}
	if err := s.FetchList(context.Background(), domain.Query{Search: "9"}); err != nil {
		t.Fatalf("FetchList: %v", err)
	}

	st := s.State()
	if len(st.Items) != 1 || st.Items[0].ID != "c9" {
		t.Errorf("Items = %v, want just c9", st.Items)
	}
	if st.Total != 1 || st.TotalPages != 1 {
		t.Errorf("Total = %d, TotalPages = %d, want 1, 1", st.Total, st.TotalPages)
	}
	if st.Loading {
		t.Error("Loading = true after settled fetch")
	}
}

func TestFetchList_LoadingWhileInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	api := &fakeAPI{
		listFn: func(context.Context, domain.Query) (*domain.Page[domain.Class], error) {
			close(entered)
			<-release
			return pageOf(0, 1, 10), nil
		},
	}
	s := New[domain.Class](api)

	done := make(chan error, 1)
	go func() { done <- s.FetchList(context.Background(), domain.Query{}) }()

	<-entered
	if st := s.State(); !st.Loading {
		t.Error("Loading = false while fetch in flight")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("FetchList: %v", err)
	}
	if st := s.State(); st.Loading {
		t.Error("Loading = true after fetch settled")
	}
}

func TestFetchList_StaleResponseDiscarded(t *testing.T) {
	firstEntered := make(chan struct{})
	firstRelease := make(chan struct{})
	calls := 0

	api := &fakeAPI{}
	api.listFn = func(ctx context.Context, q domain.Query) (*domain.Page[domain.Class], error) {
		calls++
		if calls == 1 {
			close(firstEntered)
			<-firstRelease
			return pageOf(50, 1, 10, cls("old", "Stale Page")), nil
		}
		return pageOf(50, 2, 10, cls("new", "Fresh Page")), nil
	}
	s := New[domain.Class](api)

	firstDone := make(chan error, 1)
	go func() { firstDone <- s.FetchList(context.Background(), domain.Query{Page: 1}) }()
	<-firstEntered

	// A second fetch supersedes the first while it is still in flight.
	if err := s.FetchList(context.Background(), domain.Query{Page: 2}); err != nil {
		t.Fatalf("second FetchList: %v", err)
	}

	close(firstRelease)
	<-firstDone

	st := s.State()
	if len(st.Items) != 1 || st.Items[0].ID != "new" {
		t.Errorf("Items = %v, want the fresh page only", st.Items)
	}
	if st.Page != 2 {
		t.Errorf("Page = %d, want 2", st.Page)
	}
	if st.Loading {
		t.Error("Loading = true after both fetches settled")
	}
}

func TestFetchList_ErrorKeepsItemsSetsMessage(t *testing.T) {
	s, api := seeded(t, 1, 10, cls("c1", "Grade 1"))

	api.listFn = func(context.Context, domain.Query) (*domain.Page[domain.Class], error) {
		return nil, domain.NewAppError(domain.CodeInternal, "server exploded", nil)
	}
	if err := s.FetchList(context.Background(), domain.Query{}); err == nil {
		t.Fatal("FetchList error = nil, want failure")
	}

	st := s.State()
	if st.Error != "server exploded" {
		t.Errorf("Error = %q, want the server message", st.Error)
	}
	if st.Loading {
		t.Error("Loading = true after failed fetch")
	}
	if len(st.Items) != 1 {
		t.Errorf("Items = %v, want previous page retained", st.Items)
	}
}

func TestFetchList_PlainErrorUsesFallbackMessage(t *testing.T) {
	api := &fakeAPI{
		listFn: func(context.Context, domain.Query) (*domain.Page[domain.Class], error) {
			return nil, errors.New("dial tcp: connection refused")
		},
	}
	s := New[domain.Class](api)

	if err := s.FetchList(context.Background(), domain.Query{}); err == nil {
		t.Fatal("FetchList error = nil, want failure")
	}
	if st := s.State(); st.Error != "Request failed" {
		t.Errorf("Error = %q, want generic fallback", st.Error)
	}
}

func TestFetchOne_SetsCurrentWithoutLoading(t *testing.T) {
	target := cls("c2", "Grade 2")
	api := &fakeAPI{
		getFn: func(_ context.Context, id string) (*domain.Class, error) {
			if id != "c2" {
				t.Errorf("Get id = %q, want c2", id)
			}
			return &target, nil
		},
	}
	s := New[domain.Class](api)

	if err := s.FetchOne(context.Background(), "c2"); err != nil {
		t.Fatalf("FetchOne: %v", err)
	}

	st := s.State()
	if st.Current == nil || st.Current.ID != "c2" {
		t.Errorf("Current = %v, want c2", st.Current)
	}
	if st.Loading {
		t.Error("Loading = true, FetchOne must not touch it")
	}
}

func TestFetchOne_ErrorSetsMessage(t *testing.T) {
	api := &fakeAPI{
		getFn: func(context.Context, string) (*domain.Class, error) {
			return nil, domain.NewAppError(domain.CodeNotFound, "class not found", nil)
		},
	}
	s := New[domain.Class](api)

	if err := s.FetchOne(context.Background(), "missing"); !domain.IsNotFound(err) {
		t.Fatalf("FetchOne error = %v, want not-found", err)
	}
	if st := s.State(); st.Error != "class not found" {
		t.Errorf("Error = %q, want server message", st.Error)
	}
}

func TestCreate_PrependsAndRecounts(t *testing.T) {
	s, api := seeded(t, 10, 10, cls("c1", "Grade 1"))

	created := cls("c-new", "Grade New")
	api.createFn = func(context.Context, any) (*domain.Class, error) {
		return &created, nil
	}
	if err := s.Create(context.Background(), map[string]string{"name": "Grade New"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	st := s.State()
	if len(st.Items) != 2 || st.Items[0].ID != "c-new" {
		t.Errorf("Items = %v, want c-new prepended", st.Items)
	}
	if st.Total != 11 {
		t.Errorf("Total = %d, want 11", st.Total)
	}
	if st.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2 after crossing the page boundary", st.TotalPages)
	}
	if !st.Success {
		t.Error("Success = false after fulfilled create")
	}
	if st.Loading {
		t.Error("Loading = true after settled create")
	}
}

func TestCreate_ErrorLeavesListUntouched(t *testing.T) {
	s, api := seeded(t, 1, 10, cls("c1", "Grade 1"))

	api.createFn = func(context.Context, any) (*domain.Class, error) {
		return nil, domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if err := s.Create(context.Background(), map[string]string{}); err == nil {
		t.Fatal("Create error = nil, want failure")
	}

	st := s.State()
	if len(st.Items) != 1 || st.Total != 1 {
		t.Errorf("list changed on failed create: items=%v total=%d", st.Items, st.Total)
	}
	if st.Success {
		t.Error("Success = true after failed create")
	}
	if st.Error != "name is required" {
		t.Errorf("Error = %q, want validation message", st.Error)
	}
}

func TestUpdate_ReplacesInPlace(t *testing.T) {
	s, api := seeded(t, 2, 10, cls("c1", "Grade 1"), cls("c2", "Grade 2"))

	renamed := cls("c1", "Grade 1 Renamed")
	api.updateFn = func(_ context.Context, id string, _ any) (*domain.Class, error) {
		if id != "c1" {
			t.Errorf("Update id = %q, want c1", id)
		}
		return &renamed, nil
	}
	if err := s.Update(context.Background(), "c1", map[string]string{"name": "Grade 1 Renamed"}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	st := s.State()
	if st.Items[0].Name != "Grade 1 Renamed" {
		t.Errorf("Items[0] = %v, want renamed record in place", st.Items[0])
	}
	if st.Items[1].ID != "c2" {
		t.Errorf("Items[1] = %v, want c2 untouched", st.Items[1])
	}
	if !st.Success {
		t.Error("Success = false after fulfilled update")
	}
}

func TestUpdate_OffPageIDIsSilentNoOp(t *testing.T) {
	s, api := seeded(t, 20, 10, cls("c1", "Grade 1"))

	elsewhere := cls("c-other-page", "Elsewhere")
	api.updateFn = func(context.Context, string, any) (*domain.Class, error) {
		return &elsewhere, nil
	}
	if err := s.Update(context.Background(), "c-other-page", map[string]string{}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	st := s.State()
	if len(st.Items) != 1 || st.Items[0].ID != "c1" {
		t.Errorf("Items = %v, want current page unchanged", st.Items)
	}
	if !st.Success {
		t.Error("Success = false, off-page update still succeeded")
	}
	if st.Error != "" {
		t.Errorf("Error = %q, want none", st.Error)
	}
}

func TestUpdate_ReplacesMatchingCurrent(t *testing.T) {
	s, api := seeded(t, 1, 10, cls("c1", "Grade 1"))
	selected := cls("c1", "Grade 1")
	s.Select(&selected)

	renamed := cls("c1", "Grade 1 Renamed")
	api.updateFn = func(context.Context, string, any) (*domain.Class, error) {
		return &renamed, nil
	}
	if err := s.Update(context.Background(), "c1", map[string]string{}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	st := s.State()
	if st.Current == nil || st.Current.Name != "Grade 1 Renamed" {
		t.Errorf("Current = %v, want renamed record", st.Current)
	}
}

func TestToggleStatus_MirrorsUpdate(t *testing.T) {
	s, api := seeded(t, 1, 10, cls("c1", "Grade 1"))

	toggled := cls("c1", "Grade 1")
	toggled.IsActive = false
	api.toggleFn = func(_ context.Context, id string) (*domain.Class, error) {
		if id != "c1" {
			t.Errorf("ToggleStatus id = %q, want c1", id)
		}
		return &toggled, nil
	}
	if err := s.ToggleStatus(context.Background(), "c1"); err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}

	st := s.State()
	if st.Items[0].IsActive {
		t.Error("Items[0].IsActive = true, want toggled off")
	}
	if !st.Success {
		t.Error("Success = false after fulfilled toggle")
	}
}

func TestDelete_SplicesAndRecounts(t *testing.T) {
	s, api := seeded(t, 2, 10, cls("c1", "Grade 1"), cls("c2", "Grade 2"))
	selected := cls("c1", "Grade 1")
	s.Select(&selected)

	api.deleteFn = func(_ context.Context, id string) error {
		if id != "c1" {
			t.Errorf("Delete id = %q, want c1", id)
		}
		return nil
	}
	if err := s.Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	st := s.State()
	if len(st.Items) != 1 || st.Items[0].ID != "c2" {
		t.Errorf("Items = %v, want only c2", st.Items)
	}
	if st.Total != 1 {
		t.Errorf("Total = %d, want 1", st.Total)
	}
	if st.Current != nil {
		t.Errorf("Current = %v, want cleared after deleting the selected record", st.Current)
	}
	if !st.Success {
		t.Error("Success = false after fulfilled delete")
	}
}

func TestDelete_OffPageIDStillDecrementsTotal(t *testing.T) {
	s, api := seeded(t, 25, 10, cls("c1", "Grade 1"))

	api.deleteFn = func(context.Context, string) error { return nil }
	if err := s.Delete(context.Background(), "c-other-page"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	st := s.State()
	if len(st.Items) != 1 {
		t.Errorf("Items = %v, want current page untouched", st.Items)
	}
	if st.Total != 24 {
		t.Errorf("Total = %d, want 24", st.Total)
	}
	if st.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", st.TotalPages)
	}
}

func TestDelete_TotalNeverGoesNegative(t *testing.T) {
	api := &fakeAPI{
		deleteFn: func(context.Context, string) error { return nil },
	}
	s := New[domain.Class](api)

	if err := s.Delete(context.Background(), "ghost"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if st := s.State(); st.Total != 0 {
		t.Errorf("Total = %d, want clamped at 0", st.Total)
	}
}

func TestReset_ClearsTransientStateKeepsList(t *testing.T) {
	s, api := seeded(t, 1, 10, cls("c1", "Grade 1"))

	created := cls("c2", "Grade 2")
	api.createFn = func(context.Context, any) (*domain.Class, error) { return &created, nil }
	if err := s.Create(context.Background(), nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	selected := cls("c1", "Grade 1")
	s.Select(&selected)

	s.Reset()

	st := s.State()
	if st.Success || st.Loading || st.Error != "" || st.Current != nil {
		t.Errorf("transient state not cleared: %+v", st)
	}
	if len(st.Items) != 2 || st.Total != 2 {
		t.Errorf("Reset touched the list: items=%v total=%d", st.Items, st.Total)
	}
}

func TestMutation_ClearsPriorErrorAndSuccess(t *testing.T) {
	s, api := seeded(t, 1, 10, cls("c1", "Grade 1"))

	api.createFn = func(context.Context, any) (*domain.Class, error) {
		return nil, domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if err := s.Create(context.Background(), nil); err == nil {
		t.Fatal("Create error = nil, want failure")
	}
	if st := s.State(); st.Error == "" {
		t.Fatal("Error empty after failed create")
	}

	// The next mutation clears the stale error before settling.
	renamed := cls("c1", "Grade 1 Renamed")
	api.updateFn = func(context.Context, string, any) (*domain.Class, error) { return &renamed, nil }
	if err := s.Update(context.Background(), "c1", nil); err != nil {
		t.Fatalf("Update: %v", err)
	}

	st := s.State()
	if st.Error != "" {
		t.Errorf("Error = %q, want cleared by the fulfilled update", st.Error)
	}
	if !st.Success {
		t.Error("Success = false after fulfilled update")
	}
}

func TestState_SnapshotIsDetached(t *testing.T) {
	s, _ := seeded(t, 2, 10, cls("c1", "Grade 1"), cls("c2", "Grade 2"))

	st := s.State()
	st.Items[0] = cls("mutated", "Mutated")

	if fresh := s.State(); fresh.Items[0].ID != "c1" {
		t.Errorf("store items changed through a snapshot: %v", fresh.Items)
	}
}
