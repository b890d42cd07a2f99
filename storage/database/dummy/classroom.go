package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/darasahq/darasa/core/classroom"
)

type classroomRepository struct {
	db *classroomTable
}

var _ classroom.Repository = (*classroomRepository)(nil) // interface compliance check

func NewClassroomRepository(db *DB) *classroomRepository {
	return &classroomRepository{db: db.classroom}
}

func (repo *classroomRepository) GetSessionByID(ctx context.Context, id string) (classroom.ClassSession, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if session, ok := repo.db.sessions[id]; ok {
		return *session, nil
	}
	return classroom.ClassSession{}, classroom.ErrSessionNotFound
}

func (repo *classroomRepository) CreateNote(ctx context.Context, note classroom.Note) (classroom.Note, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	note.ID = uuid.New().String()
	repo.db.notes[note.ID] = &note
	return note, nil
}

func (repo *classroomRepository) QuerySessionNotes(ctx context.Context, sessionID string) ([]classroom.Note, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	notes := make([]classroom.Note, 0)
	for _, note := range repo.db.notes {
		if note.SessionID == sessionID {
			notes = append(notes, *note)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].CreatedAt.Before(notes[j].CreatedAt) })
	return notes, nil
}

func (repo *classroomRepository) QuerySessionAttendance(ctx context.Context, sessionID string) ([]classroom.Attendance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	attendance := make([]classroom.Attendance, 0)
	for _, att := range repo.db.attendance {
		if att.SessionID == sessionID {
			attendance = append(attendance, *att)
		}
	}
	sort.Slice(attendance, func(i, j int) bool { return attendance[i].RecordedAt.Before(attendance[j].RecordedAt) })
	return attendance, nil
}

// AddSession seeds a class session; test helper.
func (db *DB) AddSession(s classroom.ClassSession) classroom.ClassSession {
	db.classroom.Lock()
	defer db.classroom.Unlock()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	db.classroom.sessions[s.ID] = &s
	return s
}

// AddAttendance seeds an attendance record; test helper.
func (db *DB) AddAttendance(a classroom.Attendance) classroom.Attendance {
	db.classroom.Lock()
	defer db.classroom.Unlock()

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	db.classroom.attendance[a.ID] = &a
	return a
}
