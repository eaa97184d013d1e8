// Package subject wires the subject resource.
package subject

import (
	"context"

	"github.com/simp-lee/schoolkit/internal/client"
	"github.com/simp-lee/schoolkit/internal/domain"
	"github.com/simp-lee/schoolkit/internal/pkg"
	"github.com/simp-lee/schoolkit/internal/store"
)

// Module is the subject entity facade.
type Module struct {
	store *store.ListStore[domain.Subject]
}

// NewModule creates the subject module over the shared base client.
func NewModule(c *client.Client) *Module {
	res := client.NewResource[domain.Subject](c, client.ResourceConfig{
		Path:       "/subjects",
		Name:       "subject",
		TogglePath: "toggle-active",
	})
	return &Module{store: store.New[domain.Subject](res)}
}

// Store exposes the list state store.
func (m *Module) Store() *store.ListStore[domain.Subject] { return m.store }

// Create validates the request and creates a subject.
func (m *Module) Create(ctx context.Context, req CreateSubjectRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	return m.store.Create(ctx, req)
}

// Update validates the request and updates a subject by id.
func (m *Module) Update(ctx context.Context, id string, req UpdateSubjectRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	return m.store.Update(ctx, id, req)
}
