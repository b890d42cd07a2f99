package enquiry

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/darasahq/darasa/core"
)

// Enquiry statuses
const (
	StatusOpen      = "open"
	StatusScheduled = "scheduled"
	StatusClosed    = "closed"
)

// Batch statuses
const (
	BatchStatusPlanned   = "planned"
	BatchStatusActive    = "active"
	BatchStatusCompleted = "completed"
)

// Enquiry is a prospective student's inquiry record,
// tracked from open through scheduled demo.
type Enquiry struct {
	ID              string    `json:"id"`
	StudentName     string    `json:"student_name"`
	ContactInfo     string    `json:"contact_info"`
	Details         string    `json:"details"`
	Status          string    `json:"status"`
	ScheduledDemoAt null.Time `json:"scheduled_demo_at"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"` // UTC
}

// Batch is a cohort of students following a shared schedule.
type Batch struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate null.Time `json:"start_date"`
	EndDate   null.Time `json:"end_date"`
	Status    string    `json:"status"`
}

// NewEnquiry contains information needed to record a new Enquiry.
type NewEnquiry struct {
	StudentName string `json:"student_name" validate:"required"`
	ContactInfo string `json:"contact_info" validate:"required"`
	Details     string `json:"details"`
}

func (ne *NewEnquiry) Validate(validate *validator.Validate) error {
	ne.StudentName = core.CleanString(ne.StudentName)
	ne.ContactInfo = core.CleanString(ne.ContactInfo)
	ne.Details = core.CleanString(ne.Details)
	return validate.Struct(ne)
}

// DemoSchedule carries the demo time for scheduling an Enquiry.
type DemoSchedule struct {
	ScheduledDemoAt time.Time `json:"scheduled_demo_at" validate:"required"`
}

func (ds DemoSchedule) Validate(validate *validator.Validate) error {
	return validate.Struct(ds)
}
