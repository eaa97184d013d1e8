package domain

import "time"

// Admission represents an admitted student.
type Admission struct {
	ID          string    `json:"_id"`
	StudentName string    `json:"studentName"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	DateOfBirth time.Time `json:"dateOfBirth,omitzero"`
	ClassID     string    `json:"classId"`
	BatchID     string    `json:"batchId,omitempty"`
	GroupID     string    `json:"groupId,omitempty"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	Status      string    `json:"status,omitempty"` // pending, approved, rejected
	Audit
}

func (a Admission) RecordID() string { return a.ID }

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceLeave   = "leave"
)

// Attendance represents one student's attendance on one date.
type Attendance struct {
	ID        string    `json:"_id"`
	StudentID string    `json:"studentId"`
	ClassID   string    `json:"classId,omitempty"`
	BatchID   string    `json:"batchId,omitempty"`
	Date      time.Time `json:"date,omitzero"`
	Status    string    `json:"status"`
	Remarks   string    `json:"remarks,omitempty"`
	Audit
}

func (a Attendance) RecordID() string { return a.ID }

// Teacher represents a teaching staff member.
type Teacher struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Designation string   `json:"designation,omitempty"`
	SubjectIDs  []string `json:"subjectIds,omitempty"`
	PhotoURL    string   `json:"photoUrl,omitempty"`
	IsActive    bool     `json:"isActive"`
	Audit
}

func (t Teacher) RecordID() string { return t.ID }
