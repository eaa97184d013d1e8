// Package admission wires the student-admission resource. Admissions
// carry an optional photo, so create/update bodies are encoded as
// multipart form data when a photo is attached, with scalar fields as
// string form fields and the image as a file part.
package admission

import (
	"context"
	"net/http"

	"github.com/simp-lee/schoolkit/internal/client"
	"github.com/simp-lee/schoolkit/internal/domain"
	"github.com/simp-lee/schoolkit/internal/pkg"
	"github.com/simp-lee/schoolkit/internal/store"
)

// Module is the admission entity facade.
type Module struct {
	res   *client.Resource[domain.Admission]
	store *store.ListStore[domain.Admission]
}

// NewModule creates the admission module over the shared base client.
func NewModule(c *client.Client) *Module {
	res := client.NewResource[domain.Admission](c, client.ResourceConfig{
		Path:         "/admissions",
		Name:         "admission",
		UpdateMethod: http.MethodPatch,
		TogglePath:   "toggle-status",
		Fields: client.EncodingTable{
			"photo": client.FieldFile,
		},
	})
	return &Module{res: res, store: store.New[domain.Admission](res)}
}

// Store exposes the list state store.
func (m *Module) Store() *store.ListStore[domain.Admission] { return m.store }

// Create validates the request and admits a student.
func (m *Module) Create(ctx context.Context, req CreateAdmissionRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	return m.store.Create(ctx, req)
}

// Update validates the request and updates an admission by id.
func (m *Module) Update(ctx context.Context, id string, req UpdateAdmissionRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	return m.store.Update(ctx, id, req)
}

// Statistics fetches the admission statistics summary. The result
// bypasses the list store; it has no bearing on list state.
func (m *Module) Statistics(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := m.res.Statistics(ctx, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
