package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	shardedcache "github.com/simp-lee/cache"

	"github.com/simp-lee/schoolkit/internal/domain"
)

// SelectOption is one canonical dropdown entry.
type SelectOption struct {
	ID    string
	Label string
}

// optionShape is the union of item shapes observed across the dropdown
// endpoints; the label field name varies per resource.
type optionShape struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	StudentName string `json:"studentName"`
	Title       string `json:"title"`
}

func (s optionShape) option() SelectOption {
	label := s.Name
	if label == "" {
		label = s.StudentName
	}
	if label == "" {
		label = s.Title
	}
	return SelectOption{ID: s.ID, Label: label}
}

// NormalizeOptions accepts any of the payload shapes the backend uses for
// ad-hoc dropdown fetches ({data:[...]}, a bare array, or a single
// object) and returns a canonical option list. The shape sniffing lives
// here and only here.
func NormalizeOptions(raw json.RawMessage) ([]SelectOption, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []SelectOption{}, nil
	}

	if trimmed[0] == '[' {
		var shapes []optionShape
		if err := json.Unmarshal(trimmed, &shapes); err != nil {
			return nil, err
		}
		options := make([]SelectOption, 0, len(shapes))
		for _, s := range shapes {
			options = append(options, s.option())
		}
		return options, nil
	}

	// Object: either the list envelope or a single item.
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(envelope.Data)) > 0 {
		return NormalizeOptions(envelope.Data)
	}

	var single optionShape
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, err
	}
	if single.ID == "" {
		return []SelectOption{}, nil
	}
	return []SelectOption{single.option()}, nil
}

// Dropdowns fetches and caches option lists for form selects, so
// repeated modal opens do not refetch the same resources.
type Dropdowns struct {
	c     *Client
	ttl   time.Duration
	cache shardedcache.CacheInterface
}

// NewDropdowns creates a dropdown fetcher with the given cache TTL.
// A non-positive TTL disables caching.
func NewDropdowns(c *Client, ttl time.Duration) *Dropdowns {
	return &Dropdowns{
		c:   c,
		ttl: ttl,
		cache: shardedcache.NewCache(shardedcache.Options{
			DefaultExpiration: ttl,
		}),
	}
}

// Options fetches the option list at path (e.g. "/classes"), serving
// from cache while fresh.
func (d *Dropdowns) Options(ctx context.Context, path string) ([]SelectOption, error) {
	if options, ok := shardedcache.GetTyped[[]SelectOption](d.cache, path); ok {
		return options, nil
	}

	var raw json.RawMessage
	if err := d.c.do(ctx, http.MethodGet, path, nil, nil, "", "Failed to fetch options", &raw); err != nil {
		return nil, err
	}
	options, err := NormalizeOptions(raw)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "Failed to fetch options", err)
	}

	if d.ttl > 0 {
		d.cache.SetWithExpiration(path, options, d.ttl)
	}
	return options, nil
}

// Invalidate drops the cached options for path, forcing the next fetch to
// hit the API. Called after mutations to the underlying resource.
func (d *Dropdowns) Invalidate(path string) {
	d.cache.Delete(path)
}

// Close releases the cache's resources.
func (d *Dropdowns) Close() {
	d.cache.Close()
}
