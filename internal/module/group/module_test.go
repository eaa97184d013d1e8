package group

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/simp-lee/schoolkit/internal/apitest"
	"github.com/simp-lee/schoolkit/internal/client"
	"github.com/simp-lee/schoolkit/internal/domain"
)

type fixedToken string

func (f fixedToken) Token(context.Context) (string, error) { return string(f), nil }

func newTestModule(t *testing.T) (*Module, *apitest.Server) {
	t.Helper()

	api := apitest.New()
	ts := httptest.NewServer(api.Router())
	t.Cleanup(ts.Close)

	c, err := client.New(ts.URL+"/api/v1",
		client.WithTokenSource(fixedToken(api.TokenFor("admin@school.test"))))
	if err != nil {
		t.Fatal(err)
	}
	return NewModule(c), api
}

func TestModule_CreateRoundTrip(t *testing.T) {
	m, api := newTestModule(t)

	err := m.Create(context.Background(), CreateGroupRequest{
		Name:        "Science Group",
		Description: "Physics, chemistry and biology stream",
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	st := m.Store().State()
	if len(st.Items) != 1 || st.Items[0].Name != "Science Group" {
		t.Errorf("Items = %v, want the created group prepended", st.Items)
	}
	if server := api.Items("groups"); len(server) != 1 {
		t.Errorf("server items = %v, want the created group", server)
	}
}

func TestModule_CreateValidationNeverReachesWire(t *testing.T) {
	m, api := newTestModule(t)

	err := m.Create(context.Background(), CreateGroupRequest{Name: "x"})
	if !domain.IsValidation(err) {
		t.Fatalf("Create error = %v, want validation", err)
	}
	if items := api.Items("groups"); len(items) != 0 {
		t.Errorf("server items = %v, want none for invalid input", items)
	}
}

func TestModule_ToggleActive(t *testing.T) {
	m, api := newTestModule(t)
	api.Seed("groups", map[string]any{"_id": "g1", "name": "Science Group", "isActive": true})

	ctx := context.Background()
	if err := m.Store().FetchList(ctx, domain.Query{}); err != nil {
		t.Fatal(err)
	}
	if err := m.Store().ToggleStatus(ctx, "g1"); err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}

	if st := m.Store().State(); st.Items[0].IsActive {
		t.Error("IsActive = true after toggle, want false")
	}
}

func TestModule_UpdateInPlace(t *testing.T) {
	m, api := newTestModule(t)
	api.Seed("groups",
		map[string]any{"_id": "g1", "name": "Science Group", "isActive": true},
		map[string]any{"_id": "g2", "name": "Commerce Group", "isActive": true},
	)

	ctx := context.Background()
	if err := m.Store().FetchList(ctx, domain.Query{}); err != nil {
		t.Fatal(err)
	}
	if err := m.Update(ctx, "g2", UpdateGroupRequest{Name: "Business Studies", IsActive: true}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	st := m.Store().State()
	if st.Items[1].Name != "Business Studies" {
		t.Errorf("Items[1] = %v, want updated in place", st.Items[1])
	}
	if len(st.Items) != 2 {
		t.Errorf("len(Items) = %d, want unchanged 2", len(st.Items))
	}
}
