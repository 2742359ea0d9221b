package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ruya-backend/internal/common/errors"
	"ruya-backend/internal/features/profile/models"
	"ruya-backend/internal/features/profile/repository"
	"ruya-backend/internal/features/profile/service"
)

type fakeProfileRepo struct {
	profiles map[string]*models.Profile

	upsertCalls int
	ensureCalls int
	resetCalls  int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*models.Profile{}}
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	copy := *p
	return &copy, nil
}

func (f *fakeProfileRepo) Upsert(_ context.Context, profile *models.Profile) error {
	f.upsertCalls++
	existing, ok := f.profiles[profile.UserID]
	if !ok {
		copy := *profile
		copy.DailyUsageCount = 0
		copy.LifetimeUsageCount = 0
		copy.LastUsageDate = time.Now()
		f.profiles[profile.UserID] = &copy
		return nil
	}
	existing.Choice = profile.Choice
	existing.Zodiac = profile.Zodiac
	existing.InterpreterType = profile.InterpreterType
	existing.IsPremium = profile.IsPremium
	return nil
}

func (f *fakeProfileRepo) EnsureExists(_ context.Context, userID string) (*models.Profile, error) {
	f.ensureCalls++
	if _, ok := f.profiles[userID]; !ok {
		f.profiles[userID] = &models.Profile{UserID: userID, LastUsageDate: time.Now()}
	}
	copy := *f.profiles[userID]
	return &copy, nil
}

func (f *fakeProfileRepo) ResetDaily(_ context.Context, userID string, today time.Time) error {
	f.resetCalls++
	p, ok := f.profiles[userID]
	if !ok {
		return repository.ErrProfileNotFound
	}
	p.DailyUsageCount = 0
	p.LastUsageDate = today
	return nil
}

func newService(repo repository.ProfileRepository) service.ProfileService {
	return service.NewProfileService(repo, nil, time.Minute)
}

func TestGetProfile_AbsentReturnsDefaultsWithoutWrite(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := newService(repo)

	resp, err := svc.GetProfile(context.Background(), "never-seen")
	require.NoError(t, err)

	assert.Equal(t, "", resp.Choice)
	assert.Equal(t, "", resp.Zodiac)
	assert.Equal(t, models.InterpreterPsychological, resp.InterpreterType)
	assert.False(t, resp.IsPremium)
	assert.Equal(t, 0, resp.UsageCount)

	assert.Empty(t, repo.profiles, "a read alone must not materialize a row")
	assert.Zero(t, repo.upsertCalls)
}

func TestSetProfile_PartialUpdateKeepsUnsetFields(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles["u1"] = &models.Profile{
		UserID:          "u1",
		Choice:          "owl",
		Zodiac:          "aries",
		InterpreterType: models.InterpreterSpiritual,
		LastUsageDate:   time.Now(),
	}
	svc := newService(repo)

	err := svc.SetProfile(context.Background(), "u1", "", "leo", "")
	require.NoError(t, err)

	p := repo.profiles["u1"]
	assert.Equal(t, "owl", p.Choice)
	assert.Equal(t, "leo", p.Zodiac)
	assert.Equal(t, models.InterpreterSpiritual, p.InterpreterType)
}

func TestSetPremium_PreservesLifetimeCount(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles["u1"] = &models.Profile{
		UserID:             "u1",
		LifetimeUsageCount: 3,
		LastUsageDate:      time.Now(),
	}
	svc := newService(repo)

	p, err := svc.SetPremium(context.Background(), "u1", true)
	require.NoError(t, err)
	assert.True(t, p.IsPremium)
	assert.Equal(t, 3, repo.profiles["u1"].LifetimeUsageCount)

	p, err = svc.SetPremium(context.Background(), "u1", false)
	require.NoError(t, err)
	assert.False(t, p.IsPremium)
	assert.Equal(t, 3, repo.profiles["u1"].LifetimeUsageCount)
}

func TestSetPremium_CreatesProfileForNewUser(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := newService(repo)

	p, err := svc.SetPremium(context.Background(), "fresh", true)
	require.NoError(t, err)
	assert.True(t, p.IsPremium)
	require.Contains(t, repo.profiles, "fresh")
}

func TestAuthorize_MaterializesDefaultProfile(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := newService(repo)

	p, err := svc.Authorize(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.False(t, p.IsPremium)
	assert.Equal(t, 1, repo.ensureCalls)
	require.Contains(t, repo.profiles, "u1")
}

func TestAuthorize_QuotaExhaustedAtLimit(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles["u1"] = &models.Profile{
		UserID:             "u1",
		LifetimeUsageCount: service.FreeLifetimeLimit,
		LastUsageDate:      time.Now(),
	}
	svc := newService(repo)

	_, err := svc.Authorize(context.Background(), "u1")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeQuotaExhausted, appErr.Code)
	assert.Equal(t, service.FreeLifetimeLimit, repo.profiles["u1"].LifetimeUsageCount)
}

func TestAuthorize_PremiumIgnoresLimit(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles["u1"] = &models.Profile{
		UserID:             "u1",
		IsPremium:          true,
		LifetimeUsageCount: 100,
		LastUsageDate:      time.Now(),
	}
	svc := newService(repo)

	p, err := svc.Authorize(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, p.IsPremium)
}

func TestAuthorize_DayRolloverResetsDailyOnly(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles["u1"] = &models.Profile{
		UserID:             "u1",
		DailyUsageCount:    4,
		LifetimeUsageCount: 4,
		LastUsageDate:      time.Now().AddDate(0, 0, -1),
	}
	svc := newService(repo)

	p, err := svc.Authorize(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 0, p.DailyUsageCount)
	assert.Equal(t, 4, p.LifetimeUsageCount)
	assert.Equal(t, 1, repo.resetCalls)
	assert.Equal(t, time.Now().Format("2006-01-02"), repo.profiles["u1"].LastUsageDate.Format("2006-01-02"))
}

func TestAuthorize_SameDayDoesNotReset(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles["u1"] = &models.Profile{
		UserID:          "u1",
		DailyUsageCount: 2,
		LastUsageDate:   time.Now(),
	}
	svc := newService(repo)

	p, err := svc.Authorize(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.DailyUsageCount)
	assert.Zero(t, repo.resetCalls)
}
