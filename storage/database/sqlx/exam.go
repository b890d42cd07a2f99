package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/darasahq/darasa/core/exam"
)

type examRepository struct {
	db *sqlx.DB
}

var _ exam.Repository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(db *sqlx.DB) *examRepository {
	return &examRepository{db: db}
}

// packJSON marshals v into a nullable jsonb value; nil maps become NULL.
func packJSON(v interface{}, empty bool) (types.JSONText, error) {
	if empty {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshalling jsonb value")
	}
	return data, nil
}

func unpackJSONMap(data types.JSONText) (map[string]interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var m map[string]interface{}
	if err := data.Unmarshal(&m); err != nil {
		return nil, errors.Wrap(err, "unmarshalling jsonb value")
	}
	return m, nil
}

type testRow struct {
	ID                string         `db:"id"`
	Title             string         `db:"title"`
	CreatorID         null.String    `db:"creator_id"`
	Type              string         `db:"type"`
	Context           types.JSONText `db:"context_json"`
	TopicDistribution types.JSONText `db:"topic_distribution"`
	CreatedAt         time.Time      `db:"created_at"`
}

func (r testRow) unpack() (exam.Test, error) {
	ctxJSON, err := unpackJSONMap(r.Context)
	if err != nil {
		return exam.Test{}, err
	}
	var dist map[string]float64
	if len(r.TopicDistribution) > 0 {
		if err = r.TopicDistribution.Unmarshal(&dist); err != nil {
			return exam.Test{}, errors.Wrap(err, "unmarshalling topic distribution")
		}
	}
	return exam.Test{
		ID:                r.ID,
		Title:             r.Title,
		CreatorID:         r.CreatorID.String,
		Type:              r.Type,
		Context:           ctxJSON,
		TopicDistribution: dist,
		CreatedAt:         r.CreatedAt,
	}, nil
}

func packTest(test exam.Test) (testRow, error) {
	ctxJSON, err := packJSON(test.Context, test.Context == nil)
	if err != nil {
		return testRow{}, err
	}
	dist, err := packJSON(test.TopicDistribution, test.TopicDistribution == nil)
	if err != nil {
		return testRow{}, err
	}
	return testRow{
		ID:                test.ID,
		Title:             test.Title,
		CreatorID:         null.NewString(test.CreatorID, test.CreatorID != ""),
		Type:              test.Type,
		Context:           ctxJSON,
		TopicDistribution: dist,
		CreatedAt:         test.CreatedAt.UTC(),
	}, nil
}

type questionRow struct {
	ID        string         `db:"id"`
	TestID    string         `db:"test_id"`
	Text      string         `db:"text"`
	Options   types.JSONText `db:"options_json"`
	AnswerKey string         `db:"answer_key"`
}

func (r questionRow) unpack() (exam.Question, error) {
	opts, err := unpackJSONMap(r.Options)
	if err != nil {
		return exam.Question{}, err
	}
	return exam.Question{
		ID:        r.ID,
		TestID:    r.TestID,
		Text:      r.Text,
		Options:   opts,
		AnswerKey: r.AnswerKey,
	}, nil
}

type attemptRow struct {
	ID          string         `db:"id"`
	TestID      string         `db:"test_id"`
	StudentID   string         `db:"student_id"`
	Answers     types.JSONText `db:"answers_json"`
	Score       float64        `db:"score"`
	SubmittedAt time.Time      `db:"submitted_at"`
}

func (r attemptRow) unpack() (exam.TestAttempt, error) {
	answers, err := unpackJSONMap(r.Answers)
	if err != nil {
		return exam.TestAttempt{}, err
	}
	return exam.TestAttempt{
		ID:          r.ID,
		TestID:      r.TestID,
		StudentID:   r.StudentID,
		Answers:     answers,
		Score:       r.Score,
		SubmittedAt: r.SubmittedAt,
	}, nil
}

func packAttempt(att exam.TestAttempt) (attemptRow, error) {
	answers, err := packJSON(att.Answers, att.Answers == nil)
	if err != nil {
		return attemptRow{}, err
	}
	return attemptRow{
		ID:          att.ID,
		TestID:      att.TestID,
		StudentID:   att.StudentID,
		Answers:     answers,
		Score:       att.Score,
		SubmittedAt: att.SubmittedAt.UTC(),
	}, nil
}

func (repo examRepository) unpackAttempts(rows []attemptRow) ([]exam.TestAttempt, error) {
	attempts := make([]exam.TestAttempt, 0, len(rows))
	for _, row := range rows {
		att, err := row.unpack()
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, att)
	}
	return attempts, nil
}

func (repo examRepository) CreateTest(ctx context.Context, test exam.Test) (exam.Test, error) {
	test.ID = uuid.New().String()
	row, err := packTest(test)
	if err != nil {
		return exam.Test{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO tests (id, title, creator_id, type, context_json, topic_distribution, created_at)
		VALUES (:id, :title, :creator_id, :type, :context_json, :topic_distribution, :created_at)`, row)
	if err != nil {
		return exam.Test{}, errors.Wrap(err, "inserting test")
	}
	return test, nil
}

func (repo examRepository) GetTestByID(ctx context.Context, id string) (exam.Test, error) {
	if _, err := uuid.Parse(id); err != nil {
		return exam.Test{}, exam.ErrTestNotFound
	}
	var row testRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM tests WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return exam.Test{}, exam.ErrTestNotFound
		}
		return exam.Test{}, errors.Wrap(err, "finding test by ID")
	}
	return row.unpack()
}

func (repo examRepository) QueryTestsByType(ctx context.Context, testType string) ([]exam.Test, error) {
	var rows []testRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM tests WHERE type = $1 ORDER BY created_at`, testType)
	if err != nil {
		return nil, errors.Wrap(err, "querying tests")
	}
	tests := make([]exam.Test, 0, len(rows))
	for _, row := range rows {
		test, err := row.unpack()
		if err != nil {
			return nil, err
		}
		tests = append(tests, test)
	}
	return tests, nil
}

func (repo examRepository) QueryTestQuestions(ctx context.Context, testID string) ([]exam.Question, error) {
	if _, err := uuid.Parse(testID); err != nil {
		return []exam.Question{}, nil
	}
	var rows []questionRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM questions WHERE test_id = $1`, testID)
	if err != nil {
		return nil, errors.Wrap(err, "querying test questions")
	}
	questions := make([]exam.Question, 0, len(rows))
	for _, row := range rows {
		q, err := row.unpack()
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (repo examRepository) CreateAttempt(ctx context.Context, att exam.TestAttempt) (exam.TestAttempt, error) {
	att.ID = uuid.New().String()
	row, err := packAttempt(att)
	if err != nil {
		return exam.TestAttempt{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO test_attempts (id, test_id, student_id, answers_json, score, submitted_at)
		VALUES (:id, :test_id, :student_id, :answers_json, :score, :submitted_at)`, row)
	if err != nil {
		return exam.TestAttempt{}, errors.Wrap(err, "inserting test attempt")
	}
	return att, nil
}

func (repo examRepository) UpdateAttempt(ctx context.Context, att exam.TestAttempt) (exam.TestAttempt, error) {
	row, err := packAttempt(att)
	if err != nil {
		return exam.TestAttempt{}, err
	}
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE test_attempts
		SET answers_json = :answers_json, score = :score, submitted_at = :submitted_at
		WHERE id = :id`, row)
	if err != nil {
		return exam.TestAttempt{}, errors.Wrap(err, "updating test attempt")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return exam.TestAttempt{}, exam.ErrAttemptNotFound
	}
	return att, nil
}

func (repo examRepository) GetLatestAttempt(ctx context.Context, testID, studentID string) (exam.TestAttempt, error) {
	if _, err := uuid.Parse(testID); err != nil {
		return exam.TestAttempt{}, exam.ErrAttemptNotFound
	}
	if _, err := uuid.Parse(studentID); err != nil {
		return exam.TestAttempt{}, exam.ErrAttemptNotFound
	}
	var row attemptRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT * FROM test_attempts
		WHERE test_id = $1 AND student_id = $2
		ORDER BY submitted_at DESC, id DESC
		LIMIT 1`, testID, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return exam.TestAttempt{}, exam.ErrAttemptNotFound
		}
		return exam.TestAttempt{}, errors.Wrap(err, "finding latest attempt")
	}
	return row.unpack()
}

func (repo examRepository) QueryStudentAttempts(ctx context.Context, studentID string) ([]exam.TestAttempt, error) {
	if _, err := uuid.Parse(studentID); err != nil {
		return []exam.TestAttempt{}, nil
	}
	var rows []attemptRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM test_attempts
		WHERE student_id = $1
		ORDER BY submitted_at DESC, id DESC`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying student attempts")
	}
	return repo.unpackAttempts(rows)
}

func (repo examRepository) QueryTestAttempts(ctx context.Context, testID string) ([]exam.TestAttempt, error) {
	if _, err := uuid.Parse(testID); err != nil {
		return []exam.TestAttempt{}, nil
	}
	var rows []attemptRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM test_attempts
		WHERE test_id = $1
		ORDER BY submitted_at DESC, id DESC`, testID)
	if err != nil {
		return nil, errors.Wrap(err, "querying test attempts")
	}
	return repo.unpackAttempts(rows)
}
