package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/simp-lee/schoolkit/internal/domain"
	"github.com/simp-lee/schoolkit/internal/pkg"
)

// ResourceConfig describes one REST resource family.
type ResourceConfig struct {
	// Path is the collection path under the API base, e.g. "/classes".
	Path string
	// Name is the singular entity name used in fallback error messages.
	Name string
	// Plural overrides the default Name+"s" pluralization.
	Plural string
	// UpdateMethod is http.MethodPut or http.MethodPatch; PUT by default.
	UpdateMethod string
	// TogglePath is the toggle sub-resource ("toggle-active",
	// "toggle-status"); empty when the entity has no status toggle.
	TogglePath string
	// Fields is the multipart encoding table for create/update DTOs.
	Fields EncodingTable
}

// Resource is a typed client for one REST resource family. It is a pure
// translation layer: no retries, no local state.
type Resource[T domain.Record] struct {
	c   *Client
	cfg ResourceConfig
}

// NewResource creates a Resource over the shared base client.
// Panics on a missing path or name; this is wiring, not input.
func NewResource[T domain.Record](c *Client, cfg ResourceConfig) *Resource[T] {
	if cfg.Path == "" {
		panic("client.NewResource: path must not be empty")
	}
	if cfg.Name == "" {
		panic("client.NewResource: name must not be empty")
	}
	if cfg.UpdateMethod == "" {
		cfg.UpdateMethod = http.MethodPut
	}
	if cfg.Plural == "" {
		cfg.Plural = cfg.Name + "s"
	}
	return &Resource[T]{c: c, cfg: cfg}
}

// Name returns the singular entity name.
func (r *Resource[T]) Name() string { return r.cfg.Name }

// List fetches one page of the collection. Endpoints that return a bare
// array instead of the pagination envelope are tolerated; the page
// metadata is synthesized locally.
func (r *Resource[T]) List(ctx context.Context, q domain.Query) (*domain.Page[T], error) {
	fallback := "Failed to fetch " + r.cfg.Plural

	var raw json.RawMessage
	if err := r.c.do(ctx, http.MethodGet, r.cfg.Path, queryValues(q), nil, "", fallback, &raw); err != nil {
		return nil, err
	}
	return decodePage[T](raw, q, fallback)
}

// Get fetches a single record by id. A missing id surfaces as a
// not-found domain error.
func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	fallback := "Failed to fetch " + r.cfg.Name

	var item T
	if err := r.c.do(ctx, http.MethodGet, r.cfg.Path+"/"+id, nil, nil, "", fallback, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create posts a new record and returns the server-created item.
func (r *Resource[T]) Create(ctx context.Context, dto any) (*T, error) {
	fallback := "Failed to create " + r.cfg.Name

	body, contentType, err := encodeBody(dto, r.cfg.Fields)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, fallback, err)
	}

	var item T
	if err := r.c.do(ctx, http.MethodPost, r.cfg.Path, nil, body, contentType, fallback, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing record, using the module's configured
// method (PUT or PATCH) and the same encoding rule as Create.
func (r *Resource[T]) Update(ctx context.Context, id string, dto any) (*T, error) {
	fallback := "Failed to update " + r.cfg.Name

	body, contentType, err := encodeBody(dto, r.cfg.Fields)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, fallback, err)
	}

	var item T
	if err := r.c.do(ctx, r.cfg.UpdateMethod, r.cfg.Path+"/"+id, nil, body, contentType, fallback, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a record by id. No response body is expected.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	fallback := "Failed to delete " + r.cfg.Name
	return r.c.do(ctx, http.MethodDelete, r.cfg.Path+"/"+id, nil, nil, "", fallback, nil)
}

// ToggleStatus flips the record's active status via the toggle
// sub-resource and returns the updated item.
func (r *Resource[T]) ToggleStatus(ctx context.Context, id string) (*T, error) {
	fallback := "Failed to update " + r.cfg.Name
	if r.cfg.TogglePath == "" {
		return nil, domain.NewAppError(domain.CodeRequest, fmt.Sprintf("%s has no status toggle", r.cfg.Name), nil)
	}

	var item T
	path := r.cfg.Path + "/" + id + "/" + r.cfg.TogglePath
	if err := r.c.do(ctx, r.cfg.UpdateMethod, path, nil, nil, "", fallback, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Statistics fetches the entity-specific statistics summary into out.
func (r *Resource[T]) Statistics(ctx context.Context, out any) error {
	fallback := "Failed to fetch " + r.cfg.Name + " statistics"
	return r.c.do(ctx, http.MethodGet, r.cfg.Path+"/statistics/summary", nil, nil, "", fallback, out)
}

// decodePage decodes a list response, sniffing between the pagination
// envelope and a bare array.
func decodePage[T domain.Record](raw json.RawMessage, q domain.Query, fallback string) (*domain.Page[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return &domain.Page[T]{Items: []T{}}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, domain.NewAppError(domain.CodeInternal, fallback, err)
		}
		page := q.Page
		if page < 1 {
			page = 1
		}
		limit := q.Limit
		if limit <= 0 {
			limit = len(items)
		}
		return &domain.Page[T]{
			Items:      items,
			Total:      len(items),
			Page:       page,
			Limit:      limit,
			TotalPages: pkg.TotalPages(len(items), limit),
		}, nil
	}

	var page domain.Page[T]
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, fallback, err)
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return &page, nil
}
