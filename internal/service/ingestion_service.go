package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/exam-service/internal/domain"
	"github.com/spec-kit/exam-service/internal/events"
	"github.com/spec-kit/exam-service/internal/repository"
	apperrors "github.com/spec-kit/exam-service/pkg/util"
)

// CandidateQuestion is one teacher-submitted question before validation.
type CandidateQuestion struct {
	Prompt  string
	Options domain.Options
	Answer  string
}

// ItemError reports a persistence failure for a single batch item. Index is
// 1-based and reflects the original submission order.
type ItemError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// BatchOutcome aggregates the per-item results of an ingest.
type BatchOutcome struct {
	Saved      []domain.Question
	Errors     []ItemError
	TotalCount int
}

// AllSaved reports full success.
func (o BatchOutcome) AllSaved() bool {
	return len(o.Errors) == 0
}

// NoneSaved reports total failure.
func (o BatchOutcome) NoneSaved() bool {
	return len(o.Saved) == 0
}

// IngestionService validates and persists teacher-submitted question batches
// with per-item failure isolation.
type IngestionService struct {
	questions  repository.QuestionRepository
	catalog    *CatalogService
	dispatcher events.Dispatcher
}

// NewIngestionService builds the service.
func NewIngestionService(questions repository.QuestionRepository, catalog *CatalogService, dispatcher events.Dispatcher) *IngestionService {
	return &IngestionService{questions: questions, catalog: catalog, dispatcher: dispatcher}
}

// SubmitBatch runs the two-phase ingest. Phase one validates every candidate
// structurally before anything is persisted; the first offending item rejects
// the whole batch. Phase two persists each item independently, so a storage
// failure on one item does not discard the rest of a hand-reviewed batch.
// Every question persisted here is approved immediately.
func (s *IngestionService) SubmitBatch(ctx context.Context, subject, ownerID string, candidates []CandidateQuestion) (BatchOutcome, error) {
	if len(candidates) == 0 {
		return BatchOutcome{}, apperrors.NewValidationError("questions must be a non-empty array", nil)
	}
	if subject == "" {
		return BatchOutcome{}, apperrors.NewValidationError("subject is required", nil)
	}

	prepared := make([]domain.Question, 0, len(candidates))
	for i, candidate := range candidates {
		q := domain.Question{
			Prompt:   candidate.Prompt,
			Options:  candidate.Options,
			Answer:   domain.OptionKey(candidate.Answer),
			Subject:  subject,
			OwnerID:  ownerID,
			Approved: true,
		}
		if err := q.Validate(); err != nil {
			return BatchOutcome{}, apperrors.NewValidationError(
				fmt.Sprintf("invalid question %d: %v", i+1, err),
				map[string]any{"index": i + 1},
			)
		}
		prepared = append(prepared, q)
	}

	outcome := BatchOutcome{TotalCount: len(prepared)}
	for i := range prepared {
		if err := s.questions.Create(ctx, &prepared[i]); err != nil {
			outcome.Errors = append(outcome.Errors, ItemError{Index: i + 1, Error: err.Error()})
			continue
		}
		outcome.Saved = append(outcome.Saved, prepared[i])
	}

	if len(outcome.Saved) > 0 && s.catalog != nil {
		s.catalog.InvalidateSubjects(ctx)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventQuestionsIngested,
			Subject:   subject,
			Actor:     events.Actor{UserID: ownerID, Role: domain.RoleTeacher},
			Timestamp: time.Now(),
			Payload: events.QuestionsIngestedPayload{
				SavedCount:  len(outcome.Saved),
				TotalCount:  outcome.TotalCount,
				FailedCount: len(outcome.Errors),
			},
		})
	}

	return outcome, nil
}
