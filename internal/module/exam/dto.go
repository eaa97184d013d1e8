package exam

import "time"

// CreateExamRequest represents the input for scheduling an exam.
type CreateExamRequest struct {
	Name       string    `json:"name" validate:"required,min=2,max=100"`
	CategoryID string    `json:"categoryId" validate:"required"`
	ClassID    string    `json:"classId,omitempty"`
	SubjectID  string    `json:"subjectId,omitempty"`
	Date       time.Time `json:"date,omitzero"`
	TotalMarks int       `json:"totalMarks,omitempty" validate:"omitempty,min=1,max=1000"`
	PassMarks  int       `json:"passMarks,omitempty" validate:"omitempty,min=0,max=1000"`
}

// UpdateExamRequest represents the input for updating an exam.
type UpdateExamRequest struct {
	Name       string    `json:"name" validate:"required,min=2,max=100"`
	CategoryID string    `json:"categoryId" validate:"required"`
	ClassID    string    `json:"classId,omitempty"`
	SubjectID  string    `json:"subjectId,omitempty"`
	Date       time.Time `json:"date,omitzero"`
	TotalMarks int       `json:"totalMarks,omitempty" validate:"omitempty,min=1,max=1000"`
	PassMarks  int       `json:"passMarks,omitempty" validate:"omitempty,min=0,max=1000"`
}

// Stats is the exam statistics summary.
type Stats struct {
	Total    int `json:"total"`
	Upcoming int `json:"upcoming"`
	Finished int `json:"finished"`
}
