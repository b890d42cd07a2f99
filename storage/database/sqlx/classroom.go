package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/darasahq/darasa/core/classroom"
)

type classroomRepository struct {
	db *sqlx.DB
}

var _ classroom.Repository = (*classroomRepository)(nil) // interface compliance check

func NewClassroomRepository(db *sqlx.DB) *classroomRepository {
	return &classroomRepository{db: db}
}

type sessionRow struct {
	ID        string      `db:"id"`
	BatchID   null.String `db:"batch_id"`
	TeacherID null.String `db:"teacher_id"`
	Topic     string      `db:"topic"`
	StartsAt  time.Time   `db:"starts_at"`
}

func (r sessionRow) unpack() classroom.ClassSession {
	return classroom.ClassSession{
		ID:        r.ID,
		BatchID:   r.BatchID.String,
		TeacherID: r.TeacherID.String,
		Topic:     r.Topic,
		StartsAt:  r.StartsAt,
	}
}

type noteRow struct {
	ID        string      `db:"id"`
	SessionID string      `db:"session_id"`
	TeacherID null.String `db:"teacher_id"`
	FileURL   string      `db:"file_url"`
	CreatedAt time.Time   `db:"created_at"`
}

func (r noteRow) unpack() classroom.Note {
	return classroom.Note{
		ID:        r.ID,
		SessionID: r.SessionID,
		TeacherID: r.TeacherID.String,
		FileURL:   r.FileURL,
		CreatedAt: r.CreatedAt,
	}
}

type attendanceRow struct {
	ID         string    `db:"id"`
	SessionID  string    `db:"session_id"`
	StudentID  string    `db:"student_id"`
	Status     string    `db:"status"`
	RecordedAt time.Time `db:"recorded_at"`
}

func (r attendanceRow) unpack() classroom.Attendance {
	return classroom.Attendance{
		ID:         r.ID,
		SessionID:  r.SessionID,
		StudentID:  r.StudentID,
		Status:     r.Status,
		RecordedAt: r.RecordedAt,
	}
}

func (repo classroomRepository) GetSessionByID(ctx context.Context, id string) (classroom.ClassSession, error) {
	if _, err := uuid.Parse(id); err != nil {
		return classroom.ClassSession{}, classroom.ErrSessionNotFound
	}
	var row sessionRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM class_sessions WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return classroom.ClassSession{}, classroom.ErrSessionNotFound
		}
		return classroom.ClassSession{}, errors.Wrap(err, "finding class session by ID")
	}
	return row.unpack(), nil
}

func (repo classroomRepository) CreateNote(ctx context.Context, note classroom.Note) (classroom.Note, error) {
	note.ID = uuid.New().String()
	row := noteRow{
		ID:        note.ID,
		SessionID: note.SessionID,
		TeacherID: null.NewString(note.TeacherID, note.TeacherID != ""),
		FileURL:   note.FileURL,
		CreatedAt: note.CreatedAt.UTC(),
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO notes (id, session_id, teacher_id, file_url, created_at)
		VALUES (:id, :session_id, :teacher_id, :file_url, :created_at)`, row)
	if err != nil {
		return classroom.Note{}, errors.Wrap(err, "inserting note")
	}
	return row.unpack(), nil
}

func (repo classroomRepository) QuerySessionNotes(ctx context.Context, sessionID string) ([]classroom.Note, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return []classroom.Note{}, nil
	}
	var rows []noteRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM notes WHERE session_id = $1 ORDER BY created_at`, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "querying session notes")
	}
	notes := make([]classroom.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, row.unpack())
	}
	return notes, nil
}

func (repo classroomRepository) QuerySessionAttendance(ctx context.Context, sessionID string) ([]classroom.Attendance, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return []classroom.Attendance{}, nil
	}
	var rows []attendanceRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM attendance WHERE session_id = $1 ORDER BY recorded_at`, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "querying session attendance")
	}
	attendance := make([]classroom.Attendance, 0, len(rows))
	for _, row := range rows {
		attendance = append(attendance, row.unpack())
	}
	return attendance, nil
}
