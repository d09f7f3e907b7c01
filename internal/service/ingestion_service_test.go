package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spec-kit/exam-service/internal/service"
	apperrors "github.com/spec-kit/exam-service/pkg/util"
)

func candidate(prompt, answer string) service.CandidateQuestion {
	return service.CandidateQuestion{Prompt: prompt, Options: validOptions(), Answer: answer}
}

func TestSubmitBatchAllSaved(t *testing.T) {
	repo := newFakeQuestionRepo()
	cache := newFakeCache()
	catalog := service.NewCatalogService(repo, cache, cache)
	svc := service.NewIngestionService(repo, catalog, nil)

	batch := []service.CandidateQuestion{
		candidate("Capital of France?", "a"),
		candidate("Capital of England?", "b"),
		candidate("Capital of Germany?", "c"),
	}
	outcome, err := svc.SubmitBatch(context.Background(), "geography", "user-1", batch)
	if err != nil {
		t.Fatalf("submit batch: %v", err)
	}
	if !outcome.AllSaved() || len(outcome.Saved) != 3 || outcome.TotalCount != 3 {
		t.Fatalf("outcome = %+v, want 3/3 saved", outcome)
	}
	for i, q := range outcome.Saved {
		if !q.Approved {
			t.Fatalf("question %d not approved; ingestion implies approval", i+1)
		}
		if q.OwnerID != "user-1" || q.Subject != "geography" {
			t.Fatalf("question %d owner/subject = %q/%q", i+1, q.OwnerID, q.Subject)
		}
	}
	if cache.invalidated == 0 {
		t.Fatal("subject cache must be invalidated after a successful ingest")
	}
}

func TestSubmitBatchRejectsMalformedItemAtomically(t *testing.T) {
	cases := []struct {
		name string
		item service.CandidateQuestion
	}{
		{"empty prompt", candidate("", "a")},
		{"bad answer key", candidate("Q?", "e")},
		{"missing option text", service.CandidateQuestion{Prompt: "Q?", Options: validOptions(), Answer: "a"}},
	}
	cases[2].item.Options.C = ""

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeQuestionRepo()
			svc := service.NewIngestionService(repo, nil, nil)

			batch := []service.CandidateQuestion{
				candidate("valid one", "a"),
				tc.item,
				candidate("valid two", "b"),
			}
			_, err := svc.SubmitBatch(context.Background(), "geography", "user-1", batch)

			var domainErr *apperrors.DomainError
			if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
				t.Fatalf("err = %v, want VALIDATION_FAILED", err)
			}
			if domainErr.Details["index"] != 2 {
				t.Fatalf("offending index = %v, want 2", domainErr.Details["index"])
			}
			if len(repo.questions) != 0 {
				t.Fatalf("%d questions persisted despite validation failure; want 0", len(repo.questions))
			}
		})
	}
}

func TestSubmitBatchEmptyAndMissingSubject(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := service.NewIngestionService(repo, nil, nil)
	ctx := context.Background()

	if _, err := svc.SubmitBatch(ctx, "geography", "user-1", nil); err == nil {
		t.Fatal("empty batch must be rejected")
	}
	if _, err := svc.SubmitBatch(ctx, "", "user-1", []service.CandidateQuestion{candidate("Q?", "a")}); err == nil {
		t.Fatal("missing subject must be rejected")
	}
}

func TestSubmitBatchPartialFailureAccounting(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := service.NewIngestionService(repo, nil, nil)

	const total = 5
	batch := make([]service.CandidateQuestion, 0, total)
	for i := 1; i <= total; i++ {
		batch = append(batch, candidate(fmt.Sprintf("question %d", i), "a"))
	}
	// Items 2 and 4 hit a storage fault.
	repo.failOn["question 2"] = errors.New("constraint violation")
	repo.failOn["question 4"] = errors.New("connection reset")

	outcome, err := svc.SubmitBatch(context.Background(), "geography", "user-1", batch)
	if err != nil {
		t.Fatalf("submit batch: %v", err)
	}
	if outcome.AllSaved() || outcome.NoneSaved() {
		t.Fatalf("outcome should be partial: %+v", outcome)
	}
	if len(outcome.Saved) != total-2 || outcome.TotalCount != total {
		t.Fatalf("savedCount = %d totalCount = %d, want 3/5", len(outcome.Saved), outcome.TotalCount)
	}
	if len(outcome.Errors) != 2 {
		t.Fatalf("error entries = %d, want 2", len(outcome.Errors))
	}
	if outcome.Errors[0].Index != 2 || outcome.Errors[1].Index != 4 {
		t.Fatalf("error indices = %d,%d; want 2,4 (1-indexed submission order)",
			outcome.Errors[0].Index, outcome.Errors[1].Index)
	}
}

func TestSubmitBatchTotalPersistenceFailure(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := service.NewIngestionService(repo, nil, nil)

	batch := []service.CandidateQuestion{candidate("only one", "d")}
	repo.failOn["only one"] = errors.New("storage down")

	outcome, err := svc.SubmitBatch(context.Background(), "geography", "user-1", batch)
	if err != nil {
		t.Fatalf("submit batch: %v", err)
	}
	if !outcome.NoneSaved() || len(outcome.Errors) != 1 || outcome.Errors[0].Index != 1 {
		t.Fatalf("outcome = %+v, want total failure with one 1-indexed error", outcome)
	}
}
