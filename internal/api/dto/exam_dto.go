package dto

import (
	"github.com/spec-kit/exam-service/internal/domain"
	"github.com/spec-kit/exam-service/internal/service"
)

// QuestionPayload is one candidate question in a batch submission.
type QuestionPayload struct {
	Question string         `json:"question"`
	Options  domain.Options `json:"options"`
	Answer   string         `json:"answer"`
}

// SubmitQuestionsRequest is the batch ingestion payload.
type SubmitQuestionsRequest struct {
	Questions []QuestionPayload `json:"questions"`
	Subject   string            `json:"subject"`
}

// Candidates converts the payload into service candidates, preserving order.
func (r SubmitQuestionsRequest) Candidates() []service.CandidateQuestion {
	candidates := make([]service.CandidateQuestion, 0, len(r.Questions))
	for _, q := range r.Questions {
		candidates = append(candidates, service.CandidateQuestion{
			Prompt:  q.Question,
			Options: q.Options,
			Answer:  q.Answer,
		})
	}
	return candidates
}

// SubjectsResponse lists available subjects.
type SubjectsResponse struct {
	Subjects []string `json:"subjects"`
}

// QuestionResponse is the student-facing question shape. There is no answer
// field on this type.
type QuestionResponse struct {
	ID       string         `json:"id"`
	Question string         `json:"question"`
	Options  domain.Options `json:"options"`
	Subject  string         `json:"subject"`
}

// QuestionsResponse wraps a delivered exam.
type QuestionsResponse struct {
	ExamID    string             `json:"examId,omitempty"`
	Questions []QuestionResponse `json:"questions"`
}

// NewQuestionsResponse maps delivered questions to the wire shape.
func NewQuestionsResponse(examID string, delivered []service.DeliveredQuestion) QuestionsResponse {
	questions := make([]QuestionResponse, 0, len(delivered))
	for _, q := range delivered {
		questions = append(questions, QuestionResponse{
			ID:       q.ID,
			Question: q.Prompt,
			Options:  q.Options,
			Subject:  q.Subject,
		})
	}
	return QuestionsResponse{ExamID: examID, Questions: questions}
}

// SubmitExamRequest carries an ordered answer list for a subject. ExamID is
// optional; when present it references the delivery that produced it.
type SubmitExamRequest struct {
	Subject string   `json:"subject"`
	ExamID  string   `json:"examId"`
	Answers []string `json:"answers"`
}

// QuestionResultResponse details the grading of one question.
type QuestionResultResponse struct {
	Question      string `json:"question"`
	YourAnswer    string `json:"yourAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
}

// ExamResultResponse is the grading summary returned to the student.
type ExamResultResponse struct {
	Score          int                      `json:"score"`
	TotalQuestions int                      `json:"totalQuestions"`
	Percentage     float64                  `json:"percentage"`
	Results        []QuestionResultResponse `json:"results"`
}

// NewExamResultResponse maps a domain result to the wire shape.
func NewExamResultResponse(result domain.ExamResult) ExamResultResponse {
	results := make([]QuestionResultResponse, 0, len(result.Results))
	for _, r := range result.Results {
		results = append(results, QuestionResultResponse{
			Question:      r.Prompt,
			YourAnswer:    r.Submitted,
			CorrectAnswer: r.Correct,
			Correct:       r.IsCorrect,
		})
	}
	return ExamResultResponse{
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		Percentage:     result.Percentage,
		Results:        results,
	}
}
