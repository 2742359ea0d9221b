package repository

import (
	"context"
	"errors"
	"time"

	"ruya-backend/internal/features/profile/models"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	// GetByUserID returns the profile or ErrProfileNotFound.
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)

	// Upsert writes the preference fields and premium flag. On conflict the
	// usage counters and last usage date are preserved.
	Upsert(ctx context.Context, profile *models.Profile) error

	// EnsureExists materializes a default profile row if the user has none
	// and returns the live row either way.
	EnsureExists(ctx context.Context, userID string) (*models.Profile, error)

	// ResetDaily zeroes the daily counter and moves last_usage_date to today.
	ResetDaily(ctx context.Context, userID string, today time.Time) error
}
