// Package teacher wires the teacher resource.
package teacher

import (
	"context"

	"github.com/simp-lee/schoolkit/internal/client"
	"github.com/simp-lee/schoolkit/internal/domain"
	"github.com/simp-lee/schoolkit/internal/pkg"
	"github.com/simp-lee/schoolkit/internal/store"
)

// Module is the teacher entity facade.
type Module struct {
	res   *client.Resource[domain.Teacher]
	store *store.ListStore[domain.Teacher]
}

// NewModule creates the teacher module over the shared base client.
func NewModule(c *client.Client) *Module {
	res := client.NewResource[domain.Teacher](c, client.ResourceConfig{
		Path:       "/teachers",
		Name:       "teacher",
		TogglePath: "toggle-active",
		Fields: client.EncodingTable{
			"photo":      client.FieldFile,
			"subjectIds": client.FieldJSON,
		},
	})
	return &Module{res: res, store: store.New[domain.Teacher](res)}
}

// Store exposes the list state store.
func (m *Module) Store() *store.ListStore[domain.Teacher] { return m.store }

// Create validates the request and registers a teacher.
func (m *Module) Create(ctx context.Context, req CreateTeacherRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	return m.store.Create(ctx, req)
}

// Update validates the request and updates a teacher by id.
func (m *Module) Update(ctx context.Context, id string, req UpdateTeacherRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	return m.store.Update(ctx, id, req)
}

// Statistics fetches the teacher statistics summary.
func (m *Module) Statistics(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := m.res.Statistics(ctx, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
