package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"ruya-backend/internal/features/dream/models"
	"ruya-backend/internal/features/dream/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.DreamRepository {
	return &postgresRepository{db: db}
}

// CreateWithUsage commits the dream insert and the owner's counter increment
// together. The increment happens in SQL, not read-modify-write in Go, so
// concurrent analyses for one user cannot lose updates.
func (r *postgresRepository) CreateWithUsage(ctx context.Context, dream *models.Dream, today time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO dreams (id, user_id, title, emotion, dream_text, interpretation, image_url, created_at, display_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.ExecContext(ctx, insert,
		dream.ID, dream.UserID, dream.Title, dream.Emotion,
		dream.DreamText, dream.Interpretation, dream.ImageURL, dream.CreatedAt, dream.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert dream: %w", err)
	}

	update := `
		UPDATE user_profiles
		SET daily_usage_count = daily_usage_count + 1,
		    lifetime_usage_count = lifetime_usage_count + 1,
		    last_usage_date = $2
		WHERE user_id = $1
	`

	if _, err := tx.ExecContext(ctx, update, dream.UserID, today.Format("2006-01-02")); err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListByUser returns the user's dreams, newest first. Ordering runs over the
// timestamptz column; the display string sorts lexicographically and would
// misorder across month boundaries.
func (r *postgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Dream, error) {
	query := `
		SELECT id, user_id, title, emotion, dream_text, interpretation, image_url, created_at, display_time
		FROM dreams
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dreams: %w", err)
	}
	defer rows.Close()

	dreams := []*models.Dream{}
	for rows.Next() {
		var dream models.Dream
		err := rows.Scan(
			&dream.ID, &dream.UserID, &dream.Title, &dream.Emotion,
			&dream.DreamText, &dream.Interpretation, &dream.ImageURL,
			&dream.CreatedAt, &dream.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dream: %w", err)
		}
		dreams = append(dreams, &dream)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dreams: %w", err)
	}

	return dreams, nil
}

// Delete removes one dream by id.
func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM dreams WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete dream: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return repository.ErrDreamNotFound
	}

	return nil
}
