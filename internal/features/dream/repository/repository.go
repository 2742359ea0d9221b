package repository

import (
	"context"
	"errors"
	"time"

	"ruya-backend/internal/features/dream/models"
)

var ErrDreamNotFound = errors.New("dream not found")

type DreamRepository interface {
	// CreateWithUsage inserts the dream and increments the owner's usage
	// counters in one transaction, so a consumed quota is never committed
	// without its record (and vice versa).
	CreateWithUsage(ctx context.Context, dream *models.Dream, today time.Time) error

	// ListByUser returns the user's dreams, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Dream, error)

	// Delete removes the dream by id or returns ErrDreamNotFound.
	Delete(ctx context.Context, id string) error
}
