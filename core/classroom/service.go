package classroom

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrSessionNotFound = errors.New("class session not found")

type (
	Repository interface {
		GetSessionByID(ctx context.Context, id string) (ClassSession, error)
		CreateNote(ctx context.Context, note Note) (Note, error)
		QuerySessionNotes(ctx context.Context, sessionID string) ([]Note, error)
		QuerySessionAttendance(ctx context.Context, sessionID string) ([]Attendance, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Notes returns all notes uploaded for a session, newest last.
// An unknown session id yields an empty list, not an error.
func (svc *Service) Notes(ctx context.Context, sessionID string) ([]Note, error) {
	return svc.repo.QuerySessionNotes(ctx, sessionID)
}

// UploadNote stores a note reference for an existing session,
// authored by the acting teacher.
func (svc *Service) UploadNote(ctx context.Context, teacherID string, nn NewNote) (Note, error) {
	if _, err := svc.repo.GetSessionByID(ctx, nn.SessionID); err != nil {
		return Note{}, err
	}
	note := Note{
		SessionID: nn.SessionID,
		TeacherID: teacherID,
		FileURL:   nn.FileURL,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateNote(ctx, note)
}

// Attendance returns the attendance records for a session.
func (svc *Service) Attendance(ctx context.Context, sessionID string) ([]Attendance, error) {
	return svc.repo.QuerySessionAttendance(ctx, sessionID)
}
