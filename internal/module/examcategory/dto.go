package examcategory

// CreateCategoryRequest represents the input for creating an exam category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
	IsActive    bool   `json:"isActive"`
}

// UpdateCategoryRequest represents the input for updating an exam category.
type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
	IsActive    bool   `json:"isActive"`
}
