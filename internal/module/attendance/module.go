// Package attendance wires the attendance resource. Attendance lists are
// usually scoped to a class/batch and a date range rather than searched
// by text.
package attendance

import (
	"context"
	"net/http"
	"time"

	"github.com/simp-lee/schoolkit/internal/client"
	"github.com/simp-lee/schoolkit/internal/domain"
	"github.com/simp-lee/schoolkit/internal/pkg"
	"github.com/simp-lee/schoolkit/internal/store"
)

// Module is the attendance entity facade.
type Module struct {
	store *store.ListStore[domain.Attendance]
}

// NewModule creates the attendance module over the shared base client.
func NewModule(c *client.Client) *Module {
	res := client.NewResource[domain.Attendance](c, client.ResourceConfig{
		Path:         "/attendance",
		Name:         "attendance record",
		Plural:       "attendance records",
		UpdateMethod: http.MethodPatch,
	})
	return &Module{store: store.New[domain.Attendance](res)}
}

// Store exposes the list state store.
func (m *Module) Store() *store.ListStore[domain.Attendance] { return m.store }

// Mark validates and records one attendance entry.
func (m *Module) Mark(ctx context.Context, req MarkAttendanceRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	return m.store.Create(ctx, req)
}

// Update validates and corrects an attendance entry by id.
func (m *Module) Update(ctx context.Context, id string, req UpdateAttendanceRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	return m.store.Update(ctx, id, req)
}

// FetchRange loads attendance for a class/batch over a date range.
// Empty classID/batchID and zero dates are omitted from the request.
func (m *Module) FetchRange(ctx context.Context, classID, batchID string, from, to time.Time, page, limit int) error {
	q := domain.Query{
		DateFrom: from,
		DateTo:   to,
		Page:     page,
		Limit:    limit,
		Extra:    map[string]any{},
	}
	if classID != "" {
		q.Extra["classId"] = classID
	}
	if batchID != "" {
		q.Extra["batchId"] = batchID
	}
	return m.store.FetchList(ctx, q)
}
