// Package batch wires the batch resource. Batches carry nested subject
// assignments, so create/update bodies go out as multipart form data
// with the subjects array serialized to a JSON-text field.
package batch

import (
	"context"
	"time"

	"github.com/simp-lee/schoolkit/internal/client"
	"github.com/simp-lee/schoolkit/internal/domain"
	"github.com/simp-lee/schoolkit/internal/pkg"
	"github.com/simp-lee/schoolkit/internal/store"
)

// Module is the batch entity facade.
type Module struct {
	store *store.ListStore[domain.Batch]
}

// NewModule creates the batch module over the shared base client.
func NewModule(c *client.Client) *Module {
	res := client.NewResource[domain.Batch](c, client.ResourceConfig{
		Path:       "/batches",
		Name:       "batch",
		Plural:     "batches",
		TogglePath: "toggle-active",
		Fields: client.EncodingTable{
			"subjects": client.FieldJSON,
		},
	})
	return &Module{store: store.New[domain.Batch](res)}
}

// Store exposes the list state store.
func (m *Module) Store() *store.ListStore[domain.Batch] { return m.store }

// Create validates the request and creates a batch.
func (m *Module) Create(ctx context.Context, req CreateBatchRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	if err := validateDates(req.StartDate, req.EndDate); err != nil {
		return err
	}
	return m.store.Create(ctx, req)
}

// Update validates the request and updates a batch by id.
func (m *Module) Update(ctx context.Context, id string, req UpdateBatchRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	if err := validateDates(req.StartDate, req.EndDate); err != nil {
		return err
	}
	return m.store.Update(ctx, id, req)
}

// validateDates rejects an end date before the start date.
func validateDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return nil
	}
	if end.Before(start) {
		return domain.NewAppError(domain.CodeValidation, "validation error",
			pkg.FieldErrors{"endDate": "must not be before startDate"})
	}
	return nil
}
