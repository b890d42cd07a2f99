package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/darasahq/darasa/core/enquiry"
)

type enquiryRepository struct {
	db *sqlx.DB
}

var _ enquiry.Repository = (*enquiryRepository)(nil) // interface compliance check

func NewEnquiryRepository(db *sqlx.DB) *enquiryRepository {
	return &enquiryRepository{db: db}
}

type enquiryRow struct {
	ID              string      `db:"id"`
	StudentName     string      `db:"student_name"`
	ContactInfo     string      `db:"contact_info"`
	Details         string      `db:"details"`
	Status          string      `db:"status"`
	ScheduledDemoAt null.Time   `db:"scheduled_demo_at"`
	CreatedBy       null.String `db:"created_by"`
	CreatedAt       time.Time   `db:"created_at"`
}

func (r enquiryRow) unpack() enquiry.Enquiry {
	return enquiry.Enquiry{
		ID:              r.ID,
		StudentName:     r.StudentName,
		ContactInfo:     r.ContactInfo,
		Details:         r.Details,
		Status:          r.Status,
		ScheduledDemoAt: r.ScheduledDemoAt,
		CreatedBy:       r.CreatedBy.String,
		CreatedAt:       r.CreatedAt,
	}
}

func packEnquiry(enq enquiry.Enquiry) enquiryRow {
	return enquiryRow{
		ID:              enq.ID,
		StudentName:     enq.StudentName,
		ContactInfo:     enq.ContactInfo,
		Details:         enq.Details,
		Status:          enq.Status,
		ScheduledDemoAt: enq.ScheduledDemoAt,
		CreatedBy:       null.NewString(enq.CreatedBy, enq.CreatedBy != ""),
		CreatedAt:       enq.CreatedAt.UTC(),
	}
}

type batchRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	StartDate null.Time `db:"start_date"`
	EndDate   null.Time `db:"end_date"`
	Status    string    `db:"status"`
}

func (r batchRow) unpack() enquiry.Batch {
	return enquiry.Batch{
		ID:        r.ID,
		Name:      r.Name,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Status:    r.Status,
	}
}

func (repo enquiryRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return enquiry.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo enquiryRepository) CreateEnquiry(ctx context.Context, enq enquiry.Enquiry) (enquiry.Enquiry, error) {
	enq.ID = uuid.New().String()
	row := packEnquiry(enq)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO enquiries (id, student_name, contact_info, details, status, scheduled_demo_at, created_by, created_at)
		VALUES (:id, :student_name, :contact_info, :details, :status, :scheduled_demo_at, :created_by, :created_at)`, row)
	if err != nil {
		return enquiry.Enquiry{}, errors.Wrap(err, "inserting enquiry")
	}
	return row.unpack(), nil
}

func (repo enquiryRepository) QueryAllEnquiries(ctx context.Context) ([]enquiry.Enquiry, error) {
	var rows []enquiryRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM enquiries ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying enquiries")
	}
	enquiries := make([]enquiry.Enquiry, 0, len(rows))
	for _, row := range rows {
		enquiries = append(enquiries, row.unpack())
	}
	return enquiries, nil
}

func (repo enquiryRepository) GetEnquiryByID(ctx context.Context, id string) (enquiry.Enquiry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return enquiry.Enquiry{}, enquiry.ErrNotFound
	}
	var row enquiryRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM enquiries WHERE id = $1`, id); err != nil {
		return enquiry.Enquiry{}, repo.trapNoRowsErr(err, "finding enquiry by ID")
	}
	return row.unpack(), nil
}

func (repo enquiryRepository) UpdateEnquiry(ctx context.Context, enq enquiry.Enquiry) (enquiry.Enquiry, error) {
	row := packEnquiry(enq)
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE enquiries
		SET student_name = :student_name, contact_info = :contact_info, details = :details,
		    status = :status, scheduled_demo_at = :scheduled_demo_at
		WHERE id = :id`, row)
	if err != nil {
		return enquiry.Enquiry{}, errors.Wrap(err, "updating enquiry")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return enquiry.Enquiry{}, enquiry.ErrNotFound
	}
	return row.unpack(), nil
}

func (repo enquiryRepository) QueryAllBatches(ctx context.Context) ([]enquiry.Batch, error) {
	var rows []batchRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM batches ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "querying batches")
	}
	batches := make([]enquiry.Batch, 0, len(rows))
	for _, row := range rows {
		batches = append(batches, row.unpack())
	}
	return batches, nil
}
