package exam

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
)

// Test types; fixed at creation.
const (
	TypeClassroom = "classroom" // authored by a teacher for general attempts
	TypeCustom    = "custom"    // authored by a student for self-practice
)

type Test struct {
	ID                string                 `json:"id"`
	Title             string                 `json:"title"`
	CreatorID         string                 `json:"creator_id"`
	Type              string                 `json:"type"`
	Context           map[string]interface{} `json:"context_json"`
	TopicDistribution map[string]float64     `json:"topic_distribution"`
	CreatedAt         time.Time              `json:"created_at"` // UTC
}

// Question belongs to exactly one Test.
// The answer key never leaves the backend.
type Question struct {
	ID        string                 `json:"id"`
	TestID    string                 `json:"test_id"`
	Text      string                 `json:"text"`
	Options   map[string]interface{} `json:"options_json"`
	AnswerKey string                 `json:"-"`
}

type Topic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
}

// QuestionTopic links a Question to a Topic; both parts required.
type QuestionTopic struct {
	QuestionID string `json:"question_id"`
	TopicID    string `json:"topic_id"`
}

// TestAttempt is one submission of answers by a student for a test.
// The score is only meaningfully populated by teacher grading.
type TestAttempt struct {
	ID          string                 `json:"id"`
	TestID      string                 `json:"test_id"`
	StudentID   string                 `json:"student_id"`
	Answers     map[string]interface{} `json:"answers_json"`
	Score       float64                `json:"score"`
	SubmittedAt time.Time              `json:"submitted_at"` // UTC
}

// NewTest contains information needed to author a Test.
// Topic distribution weights are taken as-is; they are not checked to sum to 1
// or to reference stored topics.
type NewTest struct {
	Title             string                 `json:"title" validate:"required"`
	Context           map[string]interface{} `json:"context_json"`
	TopicDistribution map[string]float64     `json:"topic_distribution"`
}

func (nt *NewTest) Validate(validate *validator.Validate) error {
	nt.Title = core.CleanString(nt.Title)
	return validate.Struct(nt)
}

// Grade carries a teacher's grading data for a student's attempt.
type Grade struct {
	Answers map[string]interface{} `json:"answers_json" validate:"required"`
	Score   float64                `json:"score" validate:"gte=0"`
}

func (g Grade) Validate(validate *validator.Validate) error {
	return validate.Struct(g)
}

// AttemptData carries a student's submitted answers.
type AttemptData struct {
	Answers map[string]interface{} `json:"answers_json" validate:"required"`
}

func (a AttemptData) Validate(validate *validator.Validate) error {
	return validate.Struct(a)
}
