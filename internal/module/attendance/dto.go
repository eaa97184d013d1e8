package attendance

import "time"

// MarkAttendanceRequest records one student's attendance for a date.
type MarkAttendanceRequest struct {
	StudentID string    `json:"studentId" validate:"required"`
	ClassID   string    `json:"classId,omitempty"`
	BatchID   string    `json:"batchId,omitempty"`
	Date      time.Time `json:"date" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present absent late leave"`
	Remarks   string    `json:"remarks,omitempty" validate:"max=500"`
}

// UpdateAttendanceRequest corrects a previously recorded entry.
type UpdateAttendanceRequest struct {
	Status  string `json:"status" validate:"required,oneof=present absent late leave"`
	Remarks string `json:"remarks,omitempty" validate:"max=500"`
}
