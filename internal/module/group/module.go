// Package group wires the student-group resource.
package group

import (
	"context"

	"github.com/simp-lee/schoolkit/internal/client"
	"github.com/simp-lee/schoolkit/internal/domain"
	"github.com/simp-lee/schoolkit/internal/pkg"
	"github.com/simp-lee/schoolkit/internal/store"
)

// Module is the group entity facade.
type Module struct {
	store *store.ListStore[domain.Group]
}

// NewModule creates the group module over the shared base client.
func NewModule(c *client.Client) *Module {
	res := client.NewResource[domain.Group](c, client.ResourceConfig{
		Path:       "/groups",
		Name:       "group",
		TogglePath: "toggle-active",
	})
	return &Module{store: store.New[domain.Group](res)}
}

// Store exposes the list state store.
func (m *Module) Store() *store.ListStore[domain.Group] { return m.store }

// Create validates the request and creates a group.
func (m *Module) Create(ctx context.Context, req CreateGroupRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	return m.store.Create(ctx, req)
}

// Update validates the request and updates a group by id.
func (m *Module) Update(ctx context.Context, id string, req UpdateGroupRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	return m.store.Update(ctx, id, req)
}
