package teacher

import "github.com/simp-lee/schoolkit/internal/domain"

// CreateTeacherRequest represents the input for registering a teacher.
type CreateTeacherRequest struct {
	Name        string             `json:"name" validate:"required,min=2,max=100"`
	Email       string             `json:"email" validate:"required,email"`
	Phone       string             `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	Designation string             `json:"designation,omitempty" validate:"max=100"`
	SubjectIDs  []string           `json:"subjectIds,omitempty"`
	Photo       *domain.FileUpload `json:"photo,omitempty"`
}

// UpdateTeacherRequest represents the input for updating a teacher.
type UpdateTeacherRequest struct {
	Name        string             `json:"name" validate:"required,min=2,max=100"`
	Email       string             `json:"email" validate:"required,email"`
	Phone       string             `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	Designation string             `json:"designation,omitempty" validate:"max=100"`
	SubjectIDs  []string           `json:"subjectIds,omitempty"`
	Photo       *domain.FileUpload `json:"photo,omitempty"`
}

// Stats is the teacher statistics summary.
type Stats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}
