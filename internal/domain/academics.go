package domain

import "time"

// Class represents a school class (grade level).
type Class struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
	Audit
}

func (c Class) RecordID() string { return c.ID }

// Subject represents a taught subject.
type Subject struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Type     string `json:"type,omitempty"` // theory or practical
	IsActive bool   `json:"isActive"`
	Audit
}

func (s Subject) RecordID() string { return s.ID }

// Group represents a student group (e.g. science, commerce).
type Group struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
	Audit
}

func (g Group) RecordID() string { return g.ID }

// BatchSubject assigns a subject (and optionally a teacher) to a batch.
type BatchSubject struct {
	SubjectID string `json:"subjectId"`
	TeacherID string `json:"teacherId,omitempty"`
}

// Batch represents a class batch (an intake/session of a class) together
// with its subject assignments.
type Batch struct {
	ID        string         `json:"_id"`
	Name      string         `json:"name"`
	ClassID   string         `json:"classId"`
	StartDate time.Time      `json:"startDate,omitzero"`
	EndDate   time.Time      `json:"endDate,omitzero"`
	Subjects  []BatchSubject `json:"subjects,omitempty"`
	IsActive  bool           `json:"isActive"`
	Audit
}

func (b Batch) RecordID() string { return b.ID }

// ExamCategory groups exams (e.g. term final, class test).
type ExamCategory struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
	Audit
}

func (c ExamCategory) RecordID() string { return c.ID }

// Exam represents a scheduled exam.
type Exam struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	CategoryID string    `json:"categoryId"`
	ClassID    string    `json:"classId,omitempty"`
	SubjectID  string    `json:"subjectId,omitempty"`
	Date       time.Time `json:"date,omitzero"`
	TotalMarks int       `json:"totalMarks,omitempty"`
	PassMarks  int       `json:"passMarks,omitempty"`
	IsActive   bool      `json:"isActive"`
	Audit
}

func (e Exam) RecordID() string { return e.ID }
