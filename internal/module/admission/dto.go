package admission

import (
	"time"

	"github.com/simp-lee/schoolkit/internal/domain"
)

// CreateAdmissionRequest represents the input for admitting a student.
// Photo, when present, turns the request into multipart form data with
// the image as a file part.
type CreateAdmissionRequest struct {
	StudentName string             `json:"studentName" validate:"required,min=2,max=100"`
	Email       string             `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string             `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	Gender      string             `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	DateOfBirth time.Time          `json:"dateOfBirth,omitzero"`
	ClassID     string             `json:"classId" validate:"required"`
	BatchID     string             `json:"batchId,omitempty"`
	GroupID     string             `json:"groupId,omitempty"`
	Photo       *domain.FileUpload `json:"photo,omitempty"`
}

// UpdateAdmissionRequest represents the input for updating an admission.
type UpdateAdmissionRequest struct {
	StudentName string             `json:"studentName" validate:"required,min=2,max=100"`
	Email       string             `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string             `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	Gender      string             `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	DateOfBirth time.Time          `json:"dateOfBirth,omitzero"`
	ClassID     string             `json:"classId" validate:"required"`
	BatchID     string             `json:"batchId,omitempty"`
	GroupID     string             `json:"groupId,omitempty"`
	Status      string             `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	Photo       *domain.FileUpload `json:"photo,omitempty"`
}

// Stats is the admission statistics summary.
type Stats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}
