// Package examcategory wires the exam-category resource.
package examcategory

import (
	"context"

	"github.com/simp-lee/schoolkit/internal/client"
	"github.com/simp-lee/schoolkit/internal/domain"
	"github.com/simp-lee/schoolkit/internal/pkg"
	"github.com/simp-lee/schoolkit/internal/store"
)

// Module is the exam-category entity facade.
type Module struct {
	store *store.ListStore[domain.ExamCategory]
}

// NewModule creates the exam-category module over the shared base client.
func NewModule(c *client.Client) *Module {
	res := client.NewResource[domain.ExamCategory](c, client.ResourceConfig{
		Path:       "/exam-categories",
		Name:       "exam category",
		Plural:     "exam categories",
		TogglePath: "toggle-active",
	})
	return &Module{store: store.New[domain.ExamCategory](res)}
}

// Store exposes the list state store.
func (m *Module) Store() *store.ListStore[domain.ExamCategory] { return m.store }

// Create validates the request and creates an exam category.
func (m *Module) Create(ctx context.Context, req CreateCategoryRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	return m.store.Create(ctx, req)
}

// Update validates the request and updates an exam category by id.
func (m *Module) Update(ctx context.Context, id string, req UpdateCategoryRequest) error {
	if err := pkg.Validate(req); err != nil {
		return err
	}
	return m.store.Update(ctx, id, req)
}
