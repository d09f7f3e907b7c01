package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/exam-service/internal/api/dto"
	"github.com/spec-kit/exam-service/internal/auth"
	"github.com/spec-kit/exam-service/internal/domain"
	"github.com/spec-kit/exam-service/internal/service"
	apperrors "github.com/spec-kit/exam-service/pkg/util"
)

// ExamHandler exposes question ingestion, exam delivery and exam submission.
type ExamHandler struct {
	catalog   *service.CatalogService
	ingestion *service.IngestionService
	exams     *service.ExamService
}

// NewExamHandler constructs handler.
func NewExamHandler(catalog *service.CatalogService, ingestion *service.IngestionService, exams *service.ExamService) *ExamHandler {
	return &ExamHandler{catalog: catalog, ingestion: ingestion, exams: exams}
}

// SubmitQuestions handles POST /exam/submit-questions. Full success is a
// 200 with a count, partial success a 207 with per-item errors, and total
// persistence failure a 500 carrying the same error detail.
func (h *ExamHandler) SubmitQuestions(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SubmitQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	outcome, err := h.ingestion.SubmitBatch(c.Context(), req.Subject, principal.UserID, req.Candidates())
	if err != nil {
		return err
	}

	switch {
	case outcome.AllSaved():
		return c.JSON(fiber.Map{
			"message": "All questions saved successfully",
			"count":   len(outcome.Saved),
		})
	case outcome.NoneSaved():
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to save any questions",
			"errors":  outcome.Errors,
		})
	default:
		return c.Status(http.StatusMultiStatus).JSON(fiber.Map{
			"message":    "Some questions were saved successfully",
			"savedCount": len(outcome.Saved),
			"totalCount": outcome.TotalCount,
			"errors":     outcome.Errors,
		})
	}
}

// Subjects handles GET /exam/subjects.
func (h *ExamHandler) Subjects(c *fiber.Ctx) error {
	subjects, err := h.catalog.ListSubjects(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.SubjectsResponse{Subjects: subjects})
}

// Questions handles GET /exam/questions/:subject. The response never carries
// answer keys.
func (h *ExamHandler) Questions(c *fiber.Ctx) error {
	subject := paramSubject(c)
	examID, delivered, err := h.catalog.DeliverExam(c.Context(), subject)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionsResponse(examID, delivered))
}

// SubmitExam handles POST /exam/submit-exam.
func (h *ExamHandler) SubmitExam(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SubmitExamRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Subject == "" {
		return apperrors.NewValidationError("subject is required", nil)
	}

	student := &domain.User{ID: principal.UserID, Role: principal.Role}
	result, err := h.exams.SubmitExam(c.Context(), student, req.Subject, req.ExamID, req.Answers)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewExamResultResponse(result))
}

func paramSubject(c *fiber.Ctx) string {
	raw := c.Params("subject")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
