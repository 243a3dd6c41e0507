package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Attempt is one completed quiz pass.
type Attempt struct {
	ID              uuid.UUID
	LearnerID       uuid.UUID
	CorrectCount    int
	QuestionCount   int
	DurationSeconds int
	CompletedAt     time.Time
}

// AttemptRepository contains DB helpers for quiz attempt history.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository constructs a new attempt repository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// Insert persists a completed attempt.
func (r *AttemptRepository) Insert(ctx context.Context, a Attempt) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO quiz_attempts (attempt_id, learner_id, correct_count, question_count, duration_seconds, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.LearnerID, a.CorrectCount, a.QuestionCount, a.DurationSeconds, a.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// ListByLearner returns a learner's most recent attempts, newest first.
func (r *AttemptRepository) ListByLearner(ctx context.Context, learnerID uuid.UUID, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx,
		`SELECT attempt_id, learner_id, correct_count, question_count, duration_seconds, completed_at
		 FROM quiz_attempts
		 WHERE learner_id = $1
		 ORDER BY completed_at DESC
		 LIMIT $2`,
		learnerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.LearnerID, &a.CorrectCount, &a.QuestionCount, &a.DurationSeconds, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return attempts, nil
}
