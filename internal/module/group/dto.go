package group

// CreateGroupRequest represents the input for creating a group.
type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
	IsActive    bool   `json:"isActive"`
}

// UpdateGroupRequest represents the input for updating a group.
type UpdateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
	IsActive    bool   `json:"isActive"`
}
