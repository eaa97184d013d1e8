// Package exam wires the exam resource.
package exam

import (
	"context"

	"github.com/simp-lee/schoolkit/internal/client"
	"github.com/simp-lee/schoolkit/internal/domain"
	"github.com/simp-lee/schoolkit/internal/pkg"
	"github.com/simp-lee/schoolkit/internal/store"
)

// Module is the exam entity facade.
type Module struct {
	res   *client.Resource[domain.Exam]
	store *store.ListStore[domain.Exam]
}

// NewModule creates the exam module over the shared base client.
func NewModule(c *client.Client) *Module {
	res := client.NewResource[domain.Exam](c, client.ResourceConfig{
		Path:       "/exams",
		Name:       "exam",
		TogglePath: "toggle-status",
	})
	return &Module{res: res, store: store.New[domain.Exam](res)}
}

// Store exposes the list state store.
func (m *Module) Store() *store.ListStore[domain.Exam] { return m.store }

// Create validates the request and schedules an exam. Pass marks above
// total marks are rejected before the request is sent.
func (m *Module) Create(ctx context.Context, req CreateExamRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	if err := validateMarks(req.TotalMarks, req.PassMarks); err != nil {
		return err
	}
	return m.store.Create(ctx, req)
}

// Update validates the request and updates an exam by id.
func (m *Module) Update(ctx context.Context, id string, req UpdateExamRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	if err := validateMarks(req.TotalMarks, req.PassMarks); err != nil {
		return err
	}
	return m.store.Update(ctx, id, req)
}

// Statistics fetches the exam statistics summary.
func (m *Module) Statistics(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := m.res.Statistics(ctx, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func validateMarks(total, pass int) error {
	if total > 0 && pass > total {
		return domain.NewAppError(domain.CodeValidation, "validation error",
			pkg.FieldErrors{"passMarks": "must not exceed totalMarks"})
	}
	return nil
}
