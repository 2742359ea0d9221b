package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"ruya-backend/internal/features/profile/models"
	"ruya-backend/internal/features/profile/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.ProfileRepository {
	return &postgresRepository{db: db}
}

// GetByUserID returns the profile by user id.
func (r *postgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT user_id, choice, zodiac, interpreter_type, is_premium,
		       daily_usage_count, lifetime_usage_count, last_usage_date
		FROM user_profiles
		WHERE user_id = $1
	`

	var profile models.Profile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID, &profile.Choice, &profile.Zodiac, &profile.InterpreterType,
		&profile.IsPremium, &profile.DailyUsageCount, &profile.LifetimeUsageCount,
		&profile.LastUsageDate)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// Upsert writes preferences and the premium flag. The conflict branch leaves
// the usage counters and last_usage_date alone so setting premium never
// resets the lifetime count.
func (r *postgresRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO user_profiles (user_id, choice, zodiac, interpreter_type, is_premium)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			choice = EXCLUDED.choice,
			zodiac = EXCLUDED.zodiac,
			interpreter_type = EXCLUDED.interpreter_type,
			is_premium = EXCLUDED.is_premium
	`

	_, err := r.db.ExecContext(ctx, query,
		profile.UserID, profile.Choice, profile.Zodiac,
		profile.InterpreterType, profile.IsPremium)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// EnsureExists materializes a default row without touching an existing one.
// The ON CONFLICT guard makes concurrent first-time requests safe.
func (r *postgresRepository) EnsureExists(ctx context.Context, userID string) (*models.Profile, error) {
	insert := `
		INSERT INTO user_profiles (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, insert, userID); err != nil {
		return nil, fmt.Errorf("failed to ensure profile: %w", err)
	}

	return r.GetByUserID(ctx, userID)
}

// ResetDaily rolls the daily counter over to a new day.
func (r *postgresRepository) ResetDaily(ctx context.Context, userID string, today time.Time) error {
	query := `
		UPDATE user_profiles
		SET daily_usage_count = 0, last_usage_date = $2
		WHERE user_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, userID, today.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("failed to reset daily usage: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}
