package service_test

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/spec-kit/exam-service/internal/api/dto"
	"github.com/spec-kit/exam-service/internal/service"
)

func seedQuestions(t *testing.T, repo *fakeQuestionRepo, catalog *service.CatalogService, subject string, answers ...string) {
	t.Helper()
	svc := service.NewIngestionService(repo, catalog, nil)
	batch := make([]service.CandidateQuestion, 0, len(answers))
	for i, answer := range answers {
		batch = append(batch, candidate(subject+" question "+string(rune('A'+i)), answer))
	}
	outcome, err := svc.SubmitBatch(context.Background(), subject, "teacher-1", batch)
	if err != nil || !outcome.AllSaved() {
		t.Fatalf("seed %s: err=%v outcome=%+v", subject, err, outcome)
	}
}

func TestListSubjectsUsesCache(t *testing.T) {
	repo := newFakeQuestionRepo()
	cache := newFakeCache()
	catalog := service.NewCatalogService(repo, cache, cache)
	ctx := context.Background()

	seedQuestions(t, repo, catalog, "geography", "a", "b")
	seedQuestions(t, repo, catalog, "history", "c")

	subjects, err := catalog.ListSubjects(ctx)
	if err != nil {
		t.Fatalf("list subjects: %v", err)
	}
	if !reflect.DeepEqual(subjects, []string{"geography", "history"}) {
		t.Fatalf("subjects = %v", subjects)
	}
	if !cache.hasSubjects {
		t.Fatal("subject list should be cached after a miss")
	}

	// A second read is served from the cache.
	cache.subjects = []string{"cached"}
	subjects, err = catalog.ListSubjects(ctx)
	if err != nil {
		t.Fatalf("list subjects (cached): %v", err)
	}
	if !reflect.DeepEqual(subjects, []string{"cached"}) {
		t.Fatalf("subjects = %v, want cache hit", subjects)
	}
}

func TestDeliverExamRedactsAnswers(t *testing.T) {
	repo := newFakeQuestionRepo()
	cache := newFakeCache()
	catalog := service.NewCatalogService(repo, cache, cache)
	ctx := context.Background()

	seedQuestions(t, repo, catalog, "geography", "a", "b", "c")

	examID, delivered, err := catalog.DeliverExam(ctx, "geography")
	if err != nil {
		t.Fatalf("deliver exam: %v", err)
	}
	if len(delivered) != 3 {
		t.Fatalf("delivered %d questions, want 3", len(delivered))
	}
	if examID == "" {
		t.Fatal("delivery should carry an exam-instance id")
	}

	raw, err := json.Marshal(dto.NewQuestionsResponse(examID, delivered))
	if err != nil {
		t.Fatalf("marshal delivery: %v", err)
	}
	if strings.Contains(string(raw), `"answer"`) {
		t.Fatalf("delivered payload leaks the answer field: %s", raw)
	}
}

func TestDeliverExamBindsOrderedSequence(t *testing.T) {
	repo := newFakeQuestionRepo()
	cache := newFakeCache()
	catalog := service.NewCatalogService(repo, cache, cache)
	ctx := context.Background()

	seedQuestions(t, repo, catalog, "geography", "a", "b")

	examID, delivered, err := catalog.DeliverExam(ctx, "geography")
	if err != nil {
		t.Fatalf("deliver exam: %v", err)
	}

	instance, err := catalog.ExamInstance(ctx, examID)
	if err != nil {
		t.Fatalf("load exam instance: %v", err)
	}
	if instance.Subject != "geography" {
		t.Fatalf("instance subject = %q", instance.Subject)
	}
	if len(instance.QuestionIDs) != len(delivered) {
		t.Fatalf("bound %d ids for %d questions", len(instance.QuestionIDs), len(delivered))
	}
	for i, q := range delivered {
		if instance.QuestionIDs[i] != q.ID {
			t.Fatalf("bound sequence diverges at %d: %s vs %s", i, instance.QuestionIDs[i], q.ID)
		}
	}
}

func TestDeliverExamEmptySubject(t *testing.T) {
	repo := newFakeQuestionRepo()
	catalog := service.NewCatalogService(repo, nil, nil)

	examID, delivered, err := catalog.DeliverExam(context.Background(), "nothing-here")
	if err != nil {
		t.Fatalf("deliver exam: %v", err)
	}
	if len(delivered) != 0 || examID != "" {
		t.Fatalf("empty subject should deliver nothing, got examID=%q questions=%d", examID, len(delivered))
	}
}

func TestListSubjectsIncludesUnapproved(t *testing.T) {
	repo := newFakeQuestionRepo()
	catalog := service.NewCatalogService(repo, nil, nil)
	ctx := context.Background()

	seedQuestions(t, repo, catalog, "geography", "a")
	// Unapproved rows still contribute their subject to the listing.
	repo.questions[len(repo.questions)-1].Approved = false

	subjects, err := catalog.ListSubjects(ctx)
	if err != nil {
		t.Fatalf("list subjects: %v", err)
	}
	if !reflect.DeepEqual(subjects, []string{"geography"}) {
		t.Fatalf("subjects = %v, want [geography]", subjects)
	}
}
