package class

// CreateClassRequest represents the input for creating a class.
type CreateClassRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
	IsActive    bool   `json:"isActive"`
}

// UpdateClassRequest represents the input for updating a class.
type UpdateClassRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
	IsActive    bool   `json:"isActive"`
}
