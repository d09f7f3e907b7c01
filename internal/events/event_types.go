package events

import (
	"time"

	"github.com/spec-kit/exam-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventQuestionsIngested EventType = "questions_ingested"
	EventExamScored        EventType = "exam_scored"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// QuestionsIngestedPayload records the outcome of a batch ingest.
type QuestionsIngestedPayload struct {
	SavedCount  int `json:"saved_count"`
	TotalCount  int `json:"total_count"`
	FailedCount int `json:"failed_count"`
}

// ExamScoredPayload records a graded submission.
type ExamScoredPayload struct {
	Score          int     `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
}
