package service_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/exam-service/internal/domain"
	"github.com/spec-kit/exam-service/internal/repository"
)

func zapNop() *zap.Logger {
	return zap.NewNop()
}

type fakeUserRepo struct {
	byUsername map[string]*domain.User
	byID       map[string]*domain.User
	seq        int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byUsername: map[string]*domain.User{},
		byID:       map[string]*domain.User{},
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.byUsername[user.Username]; exists {
		return repository.ErrDuplicateUser
	}
	for _, u := range r.byUsername {
		if u.Email == user.Email {
			return repository.ErrDuplicateUser
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.byUsername[user.Username] = &stored
	r.byID[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	stored, ok := r.byID[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	*stored = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := r.byUsername[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

type fakeQuestionRepo struct {
	questions []domain.Question
	seq       int
	failOn    map[string]error // keyed by prompt
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{failOn: map[string]error{}}
}

func (r *fakeQuestionRepo) Create(_ context.Context, question *domain.Question) error {
	if err := r.failOn[question.Prompt]; err != nil {
		return err
	}
	r.seq++
	question.ID = fmt.Sprintf("q-%03d", r.seq)
	question.CreatedAt = time.Now()
	question.UpdatedAt = question.CreatedAt
	r.questions = append(r.questions, *question)
	return nil
}

func (r *fakeQuestionRepo) ListSubjects(_ context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	subjects := []string{}
	for _, q := range r.questions {
		if _, ok := seen[q.Subject]; ok {
			continue
		}
		seen[q.Subject] = struct{}{}
		subjects = append(subjects, q.Subject)
	}
	sort.Strings(subjects)
	return subjects, nil
}

func (r *fakeQuestionRepo) ListApprovedBySubject(_ context.Context, subject string) ([]domain.Question, error) {
	matched := []domain.Question{}
	for _, q := range r.questions {
		if q.Subject == subject && q.Approved {
			matched = append(matched, q)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (r *fakeQuestionRepo) ListByIDs(_ context.Context, ids []string) ([]domain.Question, error) {
	byID := map[string]domain.Question{}
	for _, q := range r.questions {
		byID[q.ID] = q
	}
	ordered := []domain.Question{}
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

type fakeCache struct {
	subjects     []string
	hasSubjects  bool
	invalidated  int
	subjectReads int
	instances    map[string]domain.ExamInstance
}

func newFakeCache() *fakeCache {
	return &fakeCache{instances: map[string]domain.ExamInstance{}}
}

func (c *fakeCache) GetSubjects(context.Context) ([]string, bool) {
	c.subjectReads++
	if !c.hasSubjects {
		return nil, false
	}
	return c.subjects, true
}

func (c *fakeCache) SetSubjects(_ context.Context, subjects []string) {
	c.subjects = subjects
	c.hasSubjects = true
}

func (c *fakeCache) InvalidateSubjects(context.Context) {
	c.subjects = nil
	c.hasSubjects = false
	c.invalidated++
}

func (c *fakeCache) PutExamInstance(_ context.Context, instance domain.ExamInstance) error {
	c.instances[instance.ID] = instance
	return nil
}

func (c *fakeCache) GetExamInstance(_ context.Context, id string) (domain.ExamInstance, error) {
	instance, ok := c.instances[id]
	if !ok {
		return domain.ExamInstance{}, fmt.Errorf("exam instance %q not found", id)
	}
	return instance, nil
}

func validOptions() domain.Options {
	return domain.Options{A: "Paris", B: "London", C: "Berlin", D: "Madrid"}
}
