package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/exam-service/internal/domain"
)

const (
	subjectsKey        = "exam:subjects"
	examInstancePrefix = "exam:instance:"
)

// ErrExamInstanceNotFound signals an unknown or expired exam instance.
var ErrExamInstanceNotFound = errors.New("exam instance not found")

// ExamCache stores the cached subject list and exam-instance bindings in
// Redis. Both are soft state: the service degrades to storage queries when
// Redis is unavailable or the keys have expired.
type ExamCache struct {
	client      *redis.Client
	subjectsTTL time.Duration
	instanceTTL time.Duration
}

// NewExamCache builds the cache around an established Redis connection.
func NewExamCache(r *Redis, subjectsTTL, instanceTTL time.Duration) *ExamCache {
	return &ExamCache{client: r.Client, subjectsTTL: subjectsTTL, instanceTTL: instanceTTL}
}

// GetSubjects returns the cached subject list, with ok=false on miss.
func (c *ExamCache) GetSubjects(ctx context.Context) ([]string, bool) {
	raw, err := c.client.Get(ctx, subjectsKey).Bytes()
	if err != nil {
		return nil, false
	}
	var subjects []string
	if err := json.Unmarshal(raw, &subjects); err != nil {
		return nil, false
	}
	return subjects, true
}

// SetSubjects caches the subject list.
func (c *ExamCache) SetSubjects(ctx context.Context, subjects []string) {
	raw, err := json.Marshal(subjects)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, subjectsKey, raw, c.subjectsTTL).Err()
}

// InvalidateSubjects drops the cached subject list after an ingest.
func (c *ExamCache) InvalidateSubjects(ctx context.Context) {
	_ = c.client.Del(ctx, subjectsKey).Err()
}

// PutExamInstance stores the ordered question-id binding for a delivered exam.
func (c *ExamCache) PutExamInstance(ctx context.Context, instance domain.ExamInstance) error {
	raw, err := json.Marshal(instance)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, examInstancePrefix+instance.ID, raw, c.instanceTTL).Err()
}

// GetExamInstance loads a previously delivered exam binding.
func (c *ExamCache) GetExamInstance(ctx context.Context, id string) (domain.ExamInstance, error) {
	raw, err := c.client.Get(ctx, examInstancePrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ExamInstance{}, ErrExamInstanceNotFound
		}
		return domain.ExamInstance{}, err
	}
	var instance domain.ExamInstance
	if err := json.Unmarshal(raw, &instance); err != nil {
		return domain.ExamInstance{}, err
	}
	return instance, nil
}
