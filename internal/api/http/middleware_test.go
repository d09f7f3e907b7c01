package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/exam-service/internal/api/http"
	"github.com/spec-kit/exam-service/internal/auth"
	"github.com/spec-kit/exam-service/internal/domain"
	"github.com/spec-kit/exam-service/internal/observability"
)

func gateApp(tm *auth.TokenManager) *fiber.App {
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	mw := auth.NewMiddleware(tm)
	grp := app.Group("/exam", mw.Handle)
	grp.Post("/submit-questions", auth.RequireTeacher(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	grp.Get("/subjects", auth.RequireAuthenticated(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, bearer string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func TestGateDistinguishesMissingFromInvalid(t *testing.T) {
	tm := auth.NewTokenManager("secret", time.Hour)
	app := gateApp(tm)

	// Absent credentials are unauthorized.
	resp := doRequest(t, app, http.MethodGet, "/exam/subjects", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("missing header: status %d, want 401", resp.StatusCode)
	}

	// A present but invalid token is forbidden.
	resp = doRequest(t, app, http.MethodGet, "/exam/subjects", "Bearer garbage")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("invalid token: status %d, want 403", resp.StatusCode)
	}

	// So is an expired one.
	expiredTM := auth.NewTokenManager("secret", time.Millisecond)
	token, _, err := expiredTM.Issue("user-1", domain.RoleStudent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	resp = doRequest(t, app, http.MethodGet, "/exam/subjects", "Bearer "+token)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expired token: status %d, want 403", resp.StatusCode)
	}
}

func TestGateRoleRestriction(t *testing.T) {
	tm := auth.NewTokenManager("secret", time.Hour)
	app := gateApp(tm)

	studentToken, _, err := tm.Issue("student-1", domain.RoleStudent)
	if err != nil {
		t.Fatalf("issue student token: %v", err)
	}
	teacherToken, _, err := tm.Issue("teacher-1", domain.RoleTeacher)
	if err != nil {
		t.Fatalf("issue teacher token: %v", err)
	}

	// Students may list subjects but not ingest questions.
	resp := doRequest(t, app, http.MethodGet, "/exam/subjects", "Bearer "+studentToken)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("student on open route: status %d, want 200", resp.StatusCode)
	}
	resp = doRequest(t, app, http.MethodPost, "/exam/submit-questions", "Bearer "+studentToken)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("student on teacher route: status %d, want 403", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodPost, "/exam/submit-questions", "Bearer "+teacherToken)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("teacher on teacher route: status %d, want 200", resp.StatusCode)
	}
}
