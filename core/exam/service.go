package exam

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrTestNotFound    = errors.New("test not found")
	ErrAttemptNotFound = errors.New("no attempt found")
)

type (
	Repository interface {
		CreateTest(ctx context.Context, test Test) (Test, error)
		GetTestByID(ctx context.Context, id string) (Test, error)
		QueryTestsByType(ctx context.Context, testType string) ([]Test, error)
		QueryTestQuestions(ctx context.Context, testID string) ([]Question, error)
		CreateAttempt(ctx context.Context, att TestAttempt) (TestAttempt, error)
		UpdateAttempt(ctx context.Context, att TestAttempt) (TestAttempt, error)
		// GetLatestAttempt returns the attempt with the latest SubmittedAt
		// for the (test, student) pair, or ErrAttemptNotFound.
		// Equal submission times break the tie on the highest id.
		GetLatestAttempt(ctx context.Context, testID, studentID string) (TestAttempt, error)
		// QueryStudentAttempts returns a student's attempts, newest first.
		QueryStudentAttempts(ctx context.Context, studentID string) ([]TestAttempt, error)
		QueryTestAttempts(ctx context.Context, testID string) ([]TestAttempt, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) create(ctx context.Context, creatorID, testType string, nt NewTest) (Test, error) {
	test := Test{
		Title:             nt.Title,
		CreatorID:         creatorID,
		Type:              testType,
		Context:           nt.Context,
		TopicDistribution: nt.TopicDistribution,
		CreatedAt:         time.Now().UTC(),
	}
	return svc.repo.CreateTest(ctx, test)
}

// CreateClassroom authors a classroom test on behalf of a teacher.
func (svc *Service) CreateClassroom(ctx context.Context, teacherID string, nt NewTest) (Test, error) {
	return svc.create(ctx, teacherID, TypeClassroom, nt)
}

// CreateCustom authors a self-practice test on behalf of a student.
func (svc *Service) CreateCustom(ctx context.Context, studentID string, nt NewTest) (Test, error) {
	return svc.create(ctx, studentID, TypeCustom, nt)
}

// Questions returns all questions for an existing test.
// A test without questions yields an empty list, not an error.
func (svc *Service) Questions(ctx context.Context, testID string) ([]Question, error) {
	if _, err := svc.repo.GetTestByID(ctx, testID); err != nil {
		return nil, err
	}
	return svc.repo.QueryTestQuestions(ctx, testID)
}

// Grade upserts a student's attempt for a test: the latest attempt for the
// (test, student) pair is overwritten in place, or a new one created if none
// exists. Last write wins.
func (svc *Service) Grade(ctx context.Context, testID, studentID string, g Grade) (TestAttempt, error) {
	now := time.Now().UTC()

	att, err := svc.repo.GetLatestAttempt(ctx, testID, studentID)
	if err != nil {
		if errors.Cause(err) == ErrAttemptNotFound {
			att = TestAttempt{
				TestID:      testID,
				StudentID:   studentID,
				Answers:     g.Answers,
				Score:       g.Score,
				SubmittedAt: now,
			}
			return svc.repo.CreateAttempt(ctx, att)
		}
		return TestAttempt{}, err
	}

	att.Answers = g.Answers
	att.Score = g.Score
	att.SubmittedAt = now
	return svc.repo.UpdateAttempt(ctx, att)
}

// QueryAvailable returns all classroom tests.
func (svc *Service) QueryAvailable(ctx context.Context) ([]Test, error) {
	return svc.repo.QueryTestsByType(ctx, TypeClassroom)
}

// Attempt records a new attempt at a classroom test by a student.
// Every call creates a fresh attempt row; scoring against the answer key is
// not implemented and the score defaults to 0.
func (svc *Service) Attempt(ctx context.Context, testID, studentID string, a AttemptData) (TestAttempt, error) {
	test, err := svc.repo.GetTestByID(ctx, testID)
	if err != nil {
		return TestAttempt{}, err
	}
	if test.Type != TypeClassroom {
		return TestAttempt{}, ErrTestNotFound
	}

	att := TestAttempt{
		TestID:      testID,
		StudentID:   studentID,
		Answers:     a.Answers,
		Score:       0.0,
		SubmittedAt: time.Now().UTC(),
	}
	return svc.repo.CreateAttempt(ctx, att)
}

// LatestResult returns a student's most recent attempt for a test.
func (svc *Service) LatestResult(ctx context.Context, testID, studentID string) (TestAttempt, error) {
	return svc.repo.GetLatestAttempt(ctx, testID, studentID)
}

// Results returns all of a student's attempts, newest first.
func (svc *Service) Results(ctx context.Context, studentID string) ([]TestAttempt, error) {
	return svc.repo.QueryStudentAttempts(ctx, studentID)
}

// TestResults returns all attempts for a test, newest first.
func (svc *Service) TestResults(ctx context.Context, testID string) ([]TestAttempt, error) {
	return svc.repo.QueryTestAttempts(ctx, testID)
}
