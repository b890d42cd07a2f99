package exam

import (
	"context"
	"strconv"
	"testing"

	"github.com/pkg/errors"
)

type fakeRepo struct {
	tests    map[string]Test
	attempts map[string]TestAttempt
	nextID   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tests:    make(map[string]Test),
		attempts: make(map[string]TestAttempt),
	}
}

func (r *fakeRepo) id() string {
	r.nextID++
	return strconv.Itoa(r.nextID)
}

func (r *fakeRepo) CreateTest(ctx context.Context, test Test) (Test, error) {
	test.ID = r.id()
	r.tests[test.ID] = test
	return test, nil
}

func (r *fakeRepo) GetTestByID(ctx context.Context, id string) (Test, error) {
	if test, ok := r.tests[id]; ok {
		return test, nil
	}
	return Test{}, ErrTestNotFound
}

func (r *fakeRepo) QueryTestsByType(ctx context.Context, testType string) ([]Test, error) {
	tests := make([]Test, 0)
	for _, test := range r.tests {
		if test.Type == testType {
			tests = append(tests, test)
		}
	}
	return tests, nil
}

func (r *fakeRepo) QueryTestQuestions(ctx context.Context, testID string) ([]Question, error) {
	return []Question{}, nil
}

func (r *fakeRepo) CreateAttempt(ctx context.Context, att TestAttempt) (TestAttempt, error) {
	att.ID = r.id()
	r.attempts[att.ID] = att
	return att, nil
}

func (r *fakeRepo) UpdateAttempt(ctx context.Context, att TestAttempt) (TestAttempt, error) {
	if _, ok := r.attempts[att.ID]; !ok {
		return TestAttempt{}, ErrAttemptNotFound
	}
	r.attempts[att.ID] = att
	return att, nil
}

func (r *fakeRepo) GetLatestAttempt(ctx context.Context, testID, studentID string) (TestAttempt, error) {
	var latest *TestAttempt
	for id := range r.attempts {
		att := r.attempts[id]
		if att.TestID != testID || att.StudentID != studentID {
			continue
		}
		if latest == nil || att.SubmittedAt.After(latest.SubmittedAt) ||
			(att.SubmittedAt.Equal(latest.SubmittedAt) && att.ID > latest.ID) {
			latest = &att
		}
	}
	if latest == nil {
		return TestAttempt{}, ErrAttemptNotFound
	}
	return *latest, nil
}

func (r *fakeRepo) QueryStudentAttempts(ctx context.Context, studentID string) ([]TestAttempt, error) {
	attempts := make([]TestAttempt, 0)
	for _, att := range r.attempts {
		if att.StudentID == studentID {
			attempts = append(attempts, att)
		}
	}
	return attempts, nil
}

func (r *fakeRepo) QueryTestAttempts(ctx context.Context, testID string) ([]TestAttempt, error) {
	attempts := make([]TestAttempt, 0)
	for _, att := range r.attempts {
		if att.TestID == testID {
			attempts = append(attempts, att)
		}
	}
	return attempts, nil
}

func TestService_Grade_upserts(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	test, _ := repo.CreateTest(ctx, Test{Title: "T1", Type: TypeClassroom})

	first, err := svc.Grade(ctx, test.ID, "s1", Grade{Answers: map[string]interface{}{"q1": "a"}, Score: 10})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if first.Score != 10 {
		t.Errorf("Score = %v, want 10", first.Score)
	}

	second, err := svc.Grade(ctx, test.ID, "s1", Grade{Answers: map[string]interface{}{"q1": "b"}, Score: 15})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("ID = %v, want %v (same attempt overwritten)", second.ID, first.ID)
	}
	if second.Score != 15 {
		t.Errorf("Score = %v, want 15", second.Score)
	}
	if len(repo.attempts) != 1 {
		t.Errorf("len(attempts) = %d, want 1", len(repo.attempts))
	}

	// a different student gets their own attempt
	other, err := svc.Grade(ctx, test.ID, "s2", Grade{Answers: map[string]interface{}{"q1": "c"}, Score: 8})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if other.ID == second.ID {
		t.Error("grading another student reused the same attempt")
	}
}

func TestService_Attempt_alwaysCreates(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	test, _ := repo.CreateTest(ctx, Test{Title: "T1", Type: TypeClassroom})
	custom, _ := repo.CreateTest(ctx, Test{Title: "T2", Type: TypeCustom})

	data := AttemptData{Answers: map[string]interface{}{"q1": "a"}}

	first, err := svc.Attempt(ctx, test.ID, "s1", data)
	if err != nil {
		t.Fatalf("Attempt() error = %v", err)
	}
	if first.Score != 0 {
		t.Errorf("Score = %v, want 0", first.Score)
	}

	second, err := svc.Attempt(ctx, test.ID, "s1", data)
	if err != nil {
		t.Fatalf("Attempt() error = %v", err)
	}
	if second.ID == first.ID {
		t.Error("repeat attempt reused the same row")
	}
	if len(repo.attempts) != 2 {
		t.Errorf("len(attempts) = %d, want 2", len(repo.attempts))
	}

	if _, err = svc.Attempt(ctx, "nope", "s1", data); errors.Cause(err) != ErrTestNotFound {
		t.Errorf("Attempt(unknown test) error = %v, want %v", err, ErrTestNotFound)
	}
	if _, err = svc.Attempt(ctx, custom.ID, "s1", data); errors.Cause(err) != ErrTestNotFound {
		t.Errorf("Attempt(custom test) error = %v, want %v", err, ErrTestNotFound)
	}
}

func TestService_Questions_missingTest(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	if _, err := svc.Questions(ctx, "nope"); errors.Cause(err) != ErrTestNotFound {
		t.Errorf("Questions(unknown test) error = %v, want %v", err, ErrTestNotFound)
	}

	test, _ := repo.CreateTest(ctx, Test{Title: "T1", Type: TypeClassroom})
	questions, err := svc.Questions(ctx, test.ID)
	if err != nil {
		t.Fatalf("Questions() error = %v", err)
	}
	if len(questions) != 0 {
		t.Errorf("len(questions) = %d, want 0", len(questions))
	}
}
