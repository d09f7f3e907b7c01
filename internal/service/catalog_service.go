package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/exam-service/internal/domain"
	"github.com/spec-kit/exam-service/internal/repository"
)

// SubjectCache caches the distinct subject list.
type SubjectCache interface {
	GetSubjects(ctx context.Context) ([]string, bool)
	SetSubjects(ctx context.Context, subjects []string)
	InvalidateSubjects(ctx context.Context)
}

// ExamInstanceStore persists delivery-time exam bindings for later scoring.
type ExamInstanceStore interface {
	PutExamInstance(ctx context.Context, instance domain.ExamInstance) error
	GetExamInstance(ctx context.Context, id string) (domain.ExamInstance, error)
}

// DeliveredQuestion is the student-facing representation of a question.
// It deliberately has no answer field: redaction is a contract of the
// catalog, not a serialization detail.
type DeliveredQuestion struct {
	ID      string
	Prompt  string
	Options domain.Options
	Subject string
}

// CatalogService owns subject listing and answer-redacted exam delivery.
type CatalogService struct {
	questions repository.QuestionRepository
	cache     SubjectCache
	instances ExamInstanceStore
}

// NewCatalogService builds the service. cache and instances may be nil, in
// which case every call goes straight to storage and deliveries carry no
// exam-instance binding.
func NewCatalogService(questions repository.QuestionRepository, cache SubjectCache, instances ExamInstanceStore) *CatalogService {
	return &CatalogService{questions: questions, cache: cache, instances: instances}
}

// ListSubjects returns the distinct subjects across all stored questions,
// regardless of approval state.
func (s *CatalogService) ListSubjects(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if subjects, ok := s.cache.GetSubjects(ctx); ok {
			return subjects, nil
		}
	}

	subjects, err := s.questions.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetSubjects(ctx, subjects)
	}
	return subjects, nil
}

// DeliverExam returns the approved questions for a subject with answers
// redacted, plus an exam-instance id binding the exact sequence shown. The
// id is empty when no binding could be stored; submissions then fall back
// to positional matching against the current approved set.
func (s *CatalogService) DeliverExam(ctx context.Context, subject string) (string, []DeliveredQuestion, error) {
	questions, err := s.questions.ListApprovedBySubject(ctx, subject)
	if err != nil {
		return "", nil, err
	}

	delivered := make([]DeliveredQuestion, 0, len(questions))
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		delivered = append(delivered, DeliveredQuestion{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: q.Options,
			Subject: q.Subject,
		})
		ids = append(ids, q.ID)
	}

	examID := ""
	if s.instances != nil && len(ids) > 0 {
		instance := domain.ExamInstance{
			ID:          uuid.NewString(),
			Subject:     subject,
			QuestionIDs: ids,
		}
		if err := s.instances.PutExamInstance(ctx, instance); err == nil {
			examID = instance.ID
		}
	}

	return examID, delivered, nil
}

// ApprovedQuestions exposes the full (unredacted) approved sequence for the
// scoring engine. Same query and ordering as delivery.
func (s *CatalogService) ApprovedQuestions(ctx context.Context, subject string) ([]domain.Question, error) {
	return s.questions.ListApprovedBySubject(ctx, subject)
}

// QuestionsByIDs resolves a bound exam instance's sequence, preserving order.
func (s *CatalogService) QuestionsByIDs(ctx context.Context, ids []string) ([]domain.Question, error) {
	return s.questions.ListByIDs(ctx, ids)
}

// ExamInstance loads a stored delivery binding.
func (s *CatalogService) ExamInstance(ctx context.Context, id string) (domain.ExamInstance, error) {
	return s.instances.GetExamInstance(ctx, id)
}

// InvalidateSubjects drops the cached subject list; called after ingestion.
func (s *CatalogService) InvalidateSubjects(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateSubjects(ctx)
	}
}
