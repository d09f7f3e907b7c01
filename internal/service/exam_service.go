package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/exam-service/internal/domain"
	"github.com/spec-kit/exam-service/internal/events"
)

// ExamService grades submissions against the approved question sequence.
type ExamService struct {
	catalog    *CatalogService
	dispatcher events.Dispatcher
}

// NewExamService builds the service.
func NewExamService(catalog *CatalogService, dispatcher events.Dispatcher) *ExamService {
	return &ExamService{catalog: catalog, dispatcher: dispatcher}
}

// SubmitExam grades an ordered answer list for a subject. When examID names
// a delivery binding that is still live, grading runs against the exact
// question sequence the student saw, even if the approved set changed since.
// Otherwise it falls back to positional matching against the current
// approved sequence, which uses the same query and ordering as delivery.
func (s *ExamService) SubmitExam(ctx context.Context, student *domain.User, subject, examID string, answers []string) (domain.ExamResult, error) {
	questions, err := s.resolveQuestions(ctx, subject, examID)
	if err != nil {
		return domain.ExamResult{}, err
	}

	result := grade(questions, answers)

	if s.dispatcher != nil && student != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventExamScored,
			Subject:   subject,
			Actor:     events.Actor{UserID: student.ID, Role: student.Role},
			Timestamp: time.Now(),
			Payload: events.ExamScoredPayload{
				Score:          result.Score,
				TotalQuestions: result.TotalQuestions,
				Percentage:     result.Percentage,
			},
		})
	}

	return result, nil
}

func (s *ExamService) resolveQuestions(ctx context.Context, subject, examID string) ([]domain.Question, error) {
	if examID != "" && s.catalog.instances != nil {
		instance, err := s.catalog.ExamInstance(ctx, examID)
		if err == nil && instance.Subject == subject {
			return s.catalog.QuestionsByIDs(ctx, instance.QuestionIDs)
		}
	}
	return s.catalog.ApprovedQuestions(ctx, subject)
}

// grade compares answers positionally; a missing answer counts as "".
// A subject with zero questions grades to 0% rather than dividing by zero.
func grade(questions []domain.Question, answers []string) domain.ExamResult {
	result := domain.ExamResult{
		TotalQuestions: len(questions),
		Results:        make([]domain.QuestionResult, 0, len(questions)),
	}

	for i, q := range questions {
		submitted := ""
		if i < len(answers) {
			submitted = answers[i]
		}
		submittedKey := domain.OptionKey(submitted)
		correct := submitted != "" && submittedKey == q.Answer
		if correct {
			result.Score++
		}
		result.Results = append(result.Results, domain.QuestionResult{
			Prompt:    q.Prompt,
			Submitted: q.Options.Text(submittedKey),
			Correct:   q.Options.Text(q.Answer),
			IsCorrect: correct,
		})
	}

	if result.TotalQuestions > 0 {
		result.Percentage = 100 * float64(result.Score) / float64(result.TotalQuestions)
	}
	return result
}
