package batch

import (
	"time"

	"github.com/simp-lee/schoolkit/internal/domain"
)

// CreateBatchRequest represents the input for creating a batch with its
// subject assignments. Subjects are flattened to a single JSON-text form
// field on the wire.
type CreateBatchRequest struct {
	Name      string                `json:"name" validate:"required,min=2,max=100"`
	ClassID   string                `json:"classId" validate:"required"`
	StartDate time.Time             `json:"startDate,omitzero"`
	EndDate   time.Time             `json:"endDate,omitzero"`
	Subjects  []domain.BatchSubject `json:"subjects,omitempty" validate:"omitempty,dive"`
	IsActive  bool                  `json:"isActive"`
}

// UpdateBatchRequest represents the input for updating a batch.
type UpdateBatchRequest struct {
	Name      string                `json:"name" validate:"required,min=2,max=100"`
	ClassID   string                `json:"classId" validate:"required"`
	StartDate time.Time             `json:"startDate,omitzero"`
	EndDate   time.Time             `json:"endDate,omitzero"`
	Subjects  []domain.BatchSubject `json:"subjects,omitempty" validate:"omitempty,dive"`
	IsActive  bool                  `json:"isActive"`
}
