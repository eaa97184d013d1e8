package subject

// CreateSubjectRequest represents the input for creating a subject.
type CreateSubjectRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Code     string `json:"code,omitempty" validate:"omitempty,max=20"`
	Type     string `json:"type,omitempty" validate:"omitempty,oneof=theory practical"`
	IsActive bool   `json:"isActive"`
}

// UpdateSubjectRequest represents the input for updating a subject.
type UpdateSubjectRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Code     string `json:"code,omitempty" validate:"omitempty,max=20"`
	Type     string `json:"type,omitempty" validate:"omitempty,oneof=theory practical"`
	IsActive bool   `json:"isActive"`
}
