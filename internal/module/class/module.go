// Package class wires the class resource: endpoint configuration, DTO
// validation, and the shared list store.
package class

import (
	"context"

	"github.com/simp-lee/schoolkit/internal/client"
	"github.com/simp-lee/schoolkit/internal/domain"
	"github.com/simp-lee/schoolkit/internal/pkg"
	"github.com/simp-lee/schoolkit/internal/store"
)

// Module is the class entity facade. One instance per process; every
// view of the class list shares its store.
type Module struct {
	store *store.ListStore[domain.Class]
}

// NewModule creates the class module over the shared base client.
func NewModule(c *client.Client) *Module {
	res := client.NewResource[domain.Class](c, client.ResourceConfig{
		Path:       "/classes",
		Name:       "class",
		Plural:     "classes",
		TogglePath: "toggle-active",
	})
	return &Module{store: store.New[domain.Class](res)}
}

// Store exposes the list state store for presentation and tooling.
func (m *Module) Store() *store.ListStore[domain.Class] { return m.store }

// Create validates the request and creates a class. Validation failures
// never reach the wire.
func (m *Module) Create(ctx context.Context, req CreateClassRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	return m.store.Create(ctx, req)
}

// Update validates the request and updates a class by id.
func (m *Module) Update(ctx context.Context, id string, req UpdateClassRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	return m.store.Update(ctx, id, req)
}
