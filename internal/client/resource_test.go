package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/simp-lee/schoolkit/internal/domain"
)

func newTestResource(t *testing.T, handler http.Handler, cfg ResourceConfig) (*Resource[domain.Class], *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	return NewResource[domain.Class](c, cfg), srv
}

func classConfig() ResourceConfig {
	return ResourceConfig{Path: "/classes", Name: "class", Plural: "classes", TogglePath: "toggle-active"}
}

func TestNewResource_PanicsOnMissingWiring(t *testing.T) {
	c, err := New("http://localhost:1")
	if err != nil {
		t.Fatal(err)
	}

	for _, cfg := range []ResourceConfig{
		{Name: "class"},
		{Path: "/classes"},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewResource(%+v) did not panic", cfg)
				}
			}()
			NewResource[domain.Class](c, cfg)
		}()
	}
}

func TestResourceList_EnvelopeResponse(t *testing.T) {
	r, _ := newTestResource(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/classes" {
			t.Errorf("path = %q, want /classes", req.URL.Path)
		}
		if got := req.URL.Query().Get("search"); got != "grade" {
			t.Errorf("search = %q, want grade", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data":       []map[string]any{{"_id": "c1", "name": "Grade 1"}},
			"total":      11,
			"page":       2,
			"limit":      10,
			"totalPages": 2,
		})
	}), classConfig())

	page, err := r.List(context.Background(), domain.Query{Search: "grade", Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "c1" {
		t.Errorf("Items = %v, want c1", page.Items)
	}
	if page.Total != 11 || page.Page != 2 || page.TotalPages != 2 {
		t.Errorf("page meta = %+v, want envelope values", page)
	}
}

func TestResourceList_BareArraySynthesizesMeta(t *testing.T) {
	r, _ := newTestResource(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"_id": "c1", "name": "Grade 1"},
			{"_id": "c2", "name": "Grade 2"},
		})
	}), classConfig())

	page, err := r.List(context.Background(), domain.Query{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("Items = %v, want 2 records", page.Items)
	}
	if page.Total != 2 || page.Page != 1 || page.Limit != 10 || page.TotalPages != 1 {
		t.Errorf("page meta = %+v, want synthesized values", page)
	}
}

func TestResourceList_EnvelopeWithNullDataYieldsEmptySlice(t *testing.T) {
	r, _ := newTestResource(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"data": null, "total": 0, "page": 1, "limit": 10, "totalPages": 0}`))
	}), classConfig())

	page, err := r.List(context.Background(), domain.Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Items == nil {
		t.Error("Items = nil, want empty non-nil slice")
	}
	if len(page.Items) != 0 {
		t.Errorf("Items = %v, want empty", page.Items)
	}
}

func TestResourceGet_NotFound(t *testing.T) {
	r, _ := newTestResource(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "class not found"}`))
	}), classConfig())

	_, err := r.Get(context.Background(), "missing")
	if !domain.IsNotFound(err) {
		t.Fatalf("Get error = %v, want not-found", err)
	}
}

func TestResourceCreate_PostsJSONAndDecodes(t *testing.T) {
	r, _ := newTestResource(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", req.Method)
		}
		var body map[string]any
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body["name"] != "Grade 3" {
			t.Errorf("request body = %v, want the DTO", body)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id": "c3", "name": "Grade 3", "isActive": true}`))
	}), classConfig())

	item, err := r.Create(context.Background(), map[string]string{"name": "Grade 3"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ID != "c3" || !item.IsActive {
		t.Errorf("item = %+v, want the created record", item)
	}
}

func TestResourceUpdate_UsesConfiguredMethod(t *testing.T) {
	tests := []struct {
		name       string
		cfgMethod  string
		wantMethod string
	}{
		{"defaults to PUT", "", http.MethodPut},
		{"patch when configured", http.MethodPatch, http.MethodPatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod, gotPath string
			cfg := classConfig()
			cfg.UpdateMethod = tt.cfgMethod
			r, _ := newTestResource(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				gotMethod, gotPath = req.Method, req.URL.Path
				w.Write([]byte(`{"_id": "c1"}`))
			}), cfg)

			if _, err := r.Update(context.Background(), "c1", map[string]string{"name": "x"}); err != nil {
				t.Fatalf("Update: %v", err)
			}
			if gotMethod != tt.wantMethod {
				t.Errorf("method = %q, want %q", gotMethod, tt.wantMethod)
			}
			if gotPath != "/classes/c1" {
				t.Errorf("path = %q, want /classes/c1", gotPath)
			}
		})
	}
}

func TestResourceDelete(t *testing.T) {
	var gotMethod, gotPath string
	r, _ := newTestResource(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotMethod, gotPath = req.Method, req.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}), classConfig())

	if err := r.Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/classes/c1" {
		t.Errorf("request = %s %s, want DELETE /classes/c1", gotMethod, gotPath)
	}
}

func TestResourceToggleStatus(t *testing.T) {
	var gotPath string
	r, _ := newTestResource(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		w.Write([]byte(`{"_id": "c1", "isActive": false}`))
	}), classConfig())

	item, err := r.ToggleStatus(context.Background(), "c1")
	if err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}
	if gotPath != "/classes/c1/toggle-active" {
		t.Errorf("path = %q, want the toggle sub-resource", gotPath)
	}
	if item.IsActive {
		t.Error("item.IsActive = true, want toggled value from response")
	}
}

func TestResourceToggleStatus_UnsupportedEntity(t *testing.T) {
	cfg := classConfig()
	cfg.TogglePath = ""
	r, srv := newTestResource(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		t.Error("request reached the server, want local rejection")
	}), cfg)
	_ = srv

	_, err := r.ToggleStatus(context.Background(), "c1")
	if !domain.IsRequest(err) {
		t.Fatalf("ToggleStatus error = %v, want request error", err)
	}
}

func TestResourceStatistics(t *testing.T) {
	r, _ := newTestResource(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/classes/statistics/summary" {
			t.Errorf("path = %q, want statistics summary", req.URL.Path)
		}
		w.Write([]byte(`{"total": 12, "active": 9}`))
	}), classConfig())

	var stats struct {
		Total  int `json:"total"`
		Active int `json:"active"`
	}
	if err := r.Statistics(context.Background(), &stats); err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.Total != 12 || stats.Active != 9 {
		t.Errorf("stats = %+v, want decoded summary", stats)
	}
}
