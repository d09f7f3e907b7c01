package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/exam-service/internal/domain"
)

// QuestionRepository encapsulates question persistence. Both listing methods
// order by id so delivery and scoring observe the same sequence.
type QuestionRepository interface {
	Create(ctx context.Context, question *domain.Question) error
	ListSubjects(ctx context.Context) ([]string, error)
	ListApprovedBySubject(ctx context.Context, subject string) ([]domain.Question, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Question, error)
}

type questionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository instantiates repository.
func NewQuestionRepository(pool *pgxpool.Pool) QuestionRepository {
	return &questionRepository{pool: pool}
}

func (r *questionRepository) Create(ctx context.Context, question *domain.Question) error {
	const query = `
        INSERT INTO questions (prompt, options, answer, subject, owner_id, approved)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		question.Prompt,
		question.Options,
		question.Answer,
		question.Subject,
		question.OwnerID,
		question.Approved,
	).Scan(&question.ID, &question.CreatedAt, &question.UpdatedAt)
}

func (r *questionRepository) ListSubjects(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT subject FROM questions ORDER BY subject`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []string{}
	for rows.Next() {
		var subject string
		if err := rows.Scan(&subject); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

func (r *questionRepository) ListApprovedBySubject(ctx context.Context, subject string) ([]domain.Question, error) {
	const query = `
        SELECT id, prompt, options, answer, subject, owner_id, approved, created_at, updated_at
        FROM questions
        WHERE subject=$1 AND approved=TRUE
        ORDER BY id`

	rows, err := r.pool.Query(ctx, query, subject)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (r *questionRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Question, error) {
	if len(ids) == 0 {
		return []domain.Question{}, nil
	}

	const query = `
        SELECT id, prompt, options, answer, subject, owner_id, approved, created_at, updated_at
        FROM questions
        WHERE id = ANY($1::uuid[])`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}

	// Return in the caller's order; missing ids are skipped.
	byID := make(map[string]domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]domain.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanQuestions(rows rowScanner) ([]domain.Question, error) {
	questions := []domain.Question{}
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(
			&q.ID,
			&q.Prompt,
			&q.Options,
			&q.Answer,
			&q.Subject,
			&q.OwnerID,
			&q.Approved,
			&q.CreatedAt,
			&q.UpdatedAt,
		); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
