package classroom

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
)

// Attendance statuses
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
)

// ClassSession is a single taught session within a Batch.
type ClassSession struct {
	ID        string    `json:"id"`
	BatchID   string    `json:"batch_id"`
	TeacherID string    `json:"teacher_id"`
	Topic     string    `json:"topic"`
	StartsAt  time.Time `json:"starts_at"` // UTC
}

// Note is a reference to uploaded session notes; only the file URL is
// persisted, never the binary content.
type Note struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	TeacherID string    `json:"teacher_id"`
	FileURL   string    `json:"file_url"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

type Attendance struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	StudentID  string    `json:"student_id"`
	Status     string    `json:"status"`
	RecordedAt time.Time `json:"recorded_at"` // UTC
}

// NewNote contains information needed to upload session notes.
type NewNote struct {
	SessionID string `json:"session_id" validate:"required"`
	FileURL   string `json:"file_url" validate:"required,url"`
}

func (nn *NewNote) Validate(validate *validator.Validate) error {
	nn.SessionID = core.CleanString(nn.SessionID)
	nn.FileURL = core.CleanString(nn.FileURL)
	return validate.Struct(nn)
}
