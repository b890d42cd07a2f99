package enquiry

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var ErrNotFound = errors.New("enquiry not found")

type (
	Repository interface {
		CreateEnquiry(ctx context.Context, enq Enquiry) (Enquiry, error)
		QueryAllEnquiries(ctx context.Context) ([]Enquiry, error)
		GetEnquiryByID(ctx context.Context, id string) (Enquiry, error)
		UpdateEnquiry(ctx context.Context, enq Enquiry) (Enquiry, error)
		QueryAllBatches(ctx context.Context) ([]Batch, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Enquiry, error) {
	return svc.repo.QueryAllEnquiries(ctx)
}

// Create records a new Enquiry with status "open" on behalf of the acting staff user.
func (svc *Service) Create(ctx context.Context, staffID string, ne NewEnquiry) (Enquiry, error) {
	enq := Enquiry{
		StudentName: ne.StudentName,
		ContactInfo: ne.ContactInfo,
		Details:     ne.Details,
		Status:      StatusOpen,
		CreatedBy:   staffID,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateEnquiry(ctx, enq)
}

// Schedule sets the demo time on an existing Enquiry and marks it "scheduled".
// The current status is not checked; re-scheduling an already scheduled or
// closed enquiry overwrites the previous demo time.
func (svc *Service) Schedule(ctx context.Context, id string, demoAt time.Time) (Enquiry, error) {
	enq, err := svc.repo.GetEnquiryByID(ctx, id)
	if err != nil {
		return Enquiry{}, err
	}
	enq.ScheduledDemoAt = null.TimeFrom(demoAt.UTC())
	enq.Status = StatusScheduled
	return svc.repo.UpdateEnquiry(ctx, enq)
}

func (svc *Service) QueryBatches(ctx context.Context) ([]Batch, error) {
	return svc.repo.QueryAllBatches(ctx)
}
