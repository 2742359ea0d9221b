package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ruya-backend/internal/common/cache"
	apperrors "ruya-backend/internal/common/errors"
	"ruya-backend/internal/common/logger"
	"ruya-backend/internal/features/profile/models"
	"ruya-backend/internal/features/profile/repository"
)

// FreeLifetimeLimit is the number of analyses a non-premium user gets, ever.
// The daily counter is informational; only the lifetime counter gates.
const FreeLifetimeLimit = 5

const dateLayout = "2006-01-02"

type ProfileService interface {
	// GetProfile returns the public profile. An absent profile yields the
	// documented defaults without materializing a row.
	GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error)

	// SetProfile applies a partial preference update; only non-empty fields
	// overwrite. Creates the profile if absent.
	SetProfile(ctx context.Context, userID, choice, zodiac, interpreterType string) error

	// SetPremium flips the premium flag, creating a default profile for a
	// brand-new user. The lifetime usage counter is never touched.
	SetPremium(ctx context.Context, userID string, isPremium bool) (*models.Profile, error)

	// Authorize is the entitlement gate: it materializes the profile, rolls
	// the daily counter over on a new day, and fails with the quota error
	// when a non-premium user has exhausted the lifetime limit.
	Authorize(ctx context.Context, userID string) (*models.Profile, error)

	// InvalidateCache drops the cached profile after an external mutation
	// (the analysis commit increments counters outside this service).
	InvalidateCache(ctx context.Context, userID string)
}

type profileService struct {
	repo  repository.ProfileRepository
	cache *cache.CacheService
	ttl   time.Duration
}

func NewProfileService(repo repository.ProfileRepository, cacheService *cache.CacheService, ttl time.Duration) ProfileService {
	return &profileService{
		repo:  repo,
		cache: cacheService,
		ttl:   ttl,
	}
}

func profileCacheKey(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error) {
	var cached models.ProfileResponse
	if err := s.cache.Get(ctx, profileCacheKey(userID), &cached); err == nil {
		return &cached, nil
	}

	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			// Absence is an implicit default profile; reading alone
			// must not create a row.
			return models.NewDefaultProfile(userID).ToResponse(), nil
		}
		return nil, apperrors.NewDatabaseError("get profile", err).WithUserID(userID)
	}

	response := profile.ToResponse()
	if err := s.cache.Set(ctx, profileCacheKey(userID), response, s.ttl); err != nil {
		logger.Debug().Err(err).Str("user_id", userID).Msg("Profile cache set failed")
	}

	return response, nil
}

func (s *profileService) SetProfile(ctx context.Context, userID, choice, zodiac, interpreterType string) error {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrProfileNotFound) {
			return apperrors.NewDatabaseError("get profile", err).WithUserID(userID)
		}
		profile = models.NewDefaultProfile(userID)
	}

	if choice != "" {
		profile.Choice = choice
	}
	if zodiac != "" {
		profile.Zodiac = zodiac
	}
	if interpreterType != "" {
		profile.InterpreterType = interpreterType
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return apperrors.NewDatabaseError("upsert profile", err).WithUserID(userID)
	}

	s.InvalidateCache(ctx, userID)
	return nil
}

func (s *profileService) SetPremium(ctx context.Context, userID string, isPremium bool) (*models.Profile, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrProfileNotFound) {
			return nil, apperrors.NewDatabaseError("get profile", err).WithUserID(userID)
		}
		profile = models.NewDefaultProfile(userID)
	}

	profile.IsPremium = isPremium

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, apperrors.NewDatabaseError("upsert profile", err).WithUserID(userID)
	}

	s.InvalidateCache(ctx, userID)
	return profile, nil
}

func (s *profileService) Authorize(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.repo.EnsureExists(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("ensure profile", err).WithUserID(userID)
	}

	today := time.Now()
	if profile.LastUsageDate.Format(dateLayout) != today.Format(dateLayout) {
		// Rollover persists immediately, independent of whether the
		// analysis itself succeeds.
		if err := s.repo.ResetDaily(ctx, userID, today); err != nil {
			return nil, apperrors.NewDatabaseError("reset daily usage", err).WithUserID(userID)
		}
		profile.DailyUsageCount = 0
		profile.LastUsageDate = today
		s.InvalidateCache(ctx, userID)
	}

	if !profile.IsPremium && profile.LifetimeUsageCount >= FreeLifetimeLimit {
		return nil, apperrors.NewQuotaExhaustedError(userID, FreeLifetimeLimit)
	}

	return profile, nil
}

func (s *profileService) InvalidateCache(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, profileCacheKey(userID)); err != nil {
		logger.Debug().Err(err).Str("user_id", userID).Msg("Profile cache invalidation failed")
	}
}
