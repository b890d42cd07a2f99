package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/darasahq/darasa/core/exam"
)

type examRepository struct {
	db *examTable
}

var _ exam.Repository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(db *DB) *examRepository {
	return &examRepository{db: db.exam}
}

func (repo *examRepository) CreateTest(ctx context.Context, test exam.Test) (exam.Test, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	test.ID = uuid.New().String()
	repo.db.tests[test.ID] = &test
	return test, nil
}

func (repo *examRepository) GetTestByID(ctx context.Context, id string) (exam.Test, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if test, ok := repo.db.tests[id]; ok {
		return *test, nil
	}
	return exam.Test{}, exam.ErrTestNotFound
}

func (repo *examRepository) QueryTestsByType(ctx context.Context, testType string) ([]exam.Test, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tests := make([]exam.Test, 0)
	for _, test := range repo.db.tests {
		if test.Type == testType {
			tests = append(tests, *test)
		}
	}
	sort.Slice(tests, func(i, j int) bool { return tests[i].CreatedAt.Before(tests[j].CreatedAt) })
	return tests, nil
}

func (repo *examRepository) QueryTestQuestions(ctx context.Context, testID string) ([]exam.Question, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	questions := make([]exam.Question, 0)
	for _, q := range repo.db.questions {
		if q.TestID == testID {
			questions = append(questions, *q)
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	return questions, nil
}

func (repo *examRepository) CreateAttempt(ctx context.Context, att exam.TestAttempt) (exam.TestAttempt, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	att.ID = uuid.New().String()
	repo.db.attempts[att.ID] = &att
	return att, nil
}

func (repo *examRepository) UpdateAttempt(ctx context.Context, att exam.TestAttempt) (exam.TestAttempt, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.attempts[att.ID]; !ok {
		return exam.TestAttempt{}, exam.ErrAttemptNotFound
	}
	repo.db.attempts[att.ID] = &att
	return att, nil
}

func (repo *examRepository) GetLatestAttempt(ctx context.Context, testID, studentID string) (exam.TestAttempt, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var latest *exam.TestAttempt
	for _, att := range repo.db.attempts {
		if att.TestID != testID || att.StudentID != studentID {
			continue
		}
		if latest == nil || attemptAfter(*att, *latest) {
			latest = att
		}
	}
	if latest == nil {
		return exam.TestAttempt{}, exam.ErrAttemptNotFound
	}
	return *latest, nil
}

func (repo *examRepository) QueryStudentAttempts(ctx context.Context, studentID string) ([]exam.TestAttempt, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	attempts := make([]exam.TestAttempt, 0)
	for _, att := range repo.db.attempts {
		if att.StudentID == studentID {
			attempts = append(attempts, *att)
		}
	}
	sortAttemptsDesc(attempts)
	return attempts, nil
}

func (repo *examRepository) QueryTestAttempts(ctx context.Context, testID string) ([]exam.TestAttempt, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	attempts := make([]exam.TestAttempt, 0)
	for _, att := range repo.db.attempts {
		if att.TestID == testID {
			attempts = append(attempts, *att)
		}
	}
	sortAttemptsDesc(attempts)
	return attempts, nil
}

func sortAttemptsDesc(attempts []exam.TestAttempt) {
	sort.Slice(attempts, func(i, j int) bool { return attemptAfter(attempts[i], attempts[j]) })
}

// attemptAfter orders attempts by submission time, newest first; ties break on id.
func attemptAfter(a, b exam.TestAttempt) bool {
	if a.SubmittedAt.Equal(b.SubmittedAt) {
		return a.ID > b.ID
	}
	return a.SubmittedAt.After(b.SubmittedAt)
}

// AddQuestion seeds a question; test helper.
func (db *DB) AddQuestion(q exam.Question) exam.Question {
	db.exam.Lock()
	defer db.exam.Unlock()

	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	db.exam.questions[q.ID] = &q
	return q
}

// AddTest seeds a test; test helper.
func (db *DB) AddTest(t exam.Test) exam.Test {
	db.exam.Lock()
	defer db.exam.Unlock()

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	db.exam.tests[t.ID] = &t
	return t
}
