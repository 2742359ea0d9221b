package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "ruya-backend/internal/common/errors"
	"ruya-backend/internal/common/logger"
	"ruya-backend/internal/features/dream/models"
	"ruya-backend/internal/features/dream/repository"
	profileservice "ruya-backend/internal/features/profile/service"
)

// Chat is one multi-turn conversation with the text-generation collaborator.
// Turns sent earlier stay in context for later ones.
type Chat interface {
	Send(ctx context.Context, message string) (string, error)
}

// TextGenerator opens conversations. One Chat serves exactly one analysis.
type TextGenerator interface {
	StartChat() Chat
}

// AnalyzeResponse is the composed analysis result returned to the client.
type AnalyzeResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ResultText string `json:"result_text"`
	ImageURL   string `json:"image_url"`
	Emotion    string `json:"emotion"`
}

type DreamService interface {
	// Analyze runs the full interpretation pipeline for one dream.
	Analyze(ctx context.Context, userID, dreamText string) (*AnalyzeResponse, error)

	// History lists the user's past dreams, newest first.
	History(ctx context.Context, userID string) ([]*models.Dream, error)

	// Delete removes one dream by id.
	Delete(ctx context.Context, id string) error
}

type dreamService struct {
	repo     repository.DreamRepository
	profiles profileservice.ProfileService
	llm      TextGenerator
	imageCfg ImageConfig
}

func NewDreamService(repo repository.DreamRepository, profiles profileservice.ProfileService, llm TextGenerator, imageCfg ImageConfig) DreamService {
	return &dreamService{
		repo:     repo,
		profiles: profiles,
		llm:      llm,
		imageCfg: imageCfg,
	}
}

// Analyze executes the four pipeline stages in strict sequence: main
// interpretation, title/emotion extraction, image-prompt extraction (all on
// one conversation), then image URL synthesis. Nothing is persisted until
// every stage has succeeded, so a failed stage never consumes quota.
func (s *dreamService) Analyze(ctx context.Context, userID, dreamText string) (*AnalyzeResponse, error) {
	profile, err := s.profiles.Authorize(ctx, userID)
	if err != nil {
		return nil, err
	}

	chat := s.llm.StartChat()

	interpretation, err := chat.Send(ctx, BuildAnalysisPrompt(profile, dreamText))
	if err != nil {
		return nil, apperrors.NewTextGenerationError("interpretation", err).WithUserID(userID)
	}

	titleEmotionRaw, err := chat.Send(ctx, titleEmotionInstruction)
	if err != nil {
		return nil, apperrors.NewTextGenerationError("title_emotion", err).WithUserID(userID)
	}

	imagePrompt, err := chat.Send(ctx, imagePromptInstruction)
	if err != nil {
		return nil, apperrors.NewTextGenerationError("image_prompt", err).WithUserID(userID)
	}

	now := time.Now()
	imageURL := BuildImageURL(s.imageCfg, imagePrompt, now.UnixMicro())
	title, emotion := ParseTitleEmotion(titleEmotionRaw)

	dream := &models.Dream{
		ID:             uuid.New().String(),
		UserID:         userID,
		Title:          title,
		Emotion:        emotion,
		DreamText:      dreamText,
		Interpretation: interpretation,
		ImageURL:       imageURL,
		Timestamp:      now.Format(models.TimestampLayout),
		CreatedAt:      now,
	}

	if err := s.repo.CreateWithUsage(ctx, dream, now); err != nil {
		return nil, apperrors.NewDatabaseError("create dream", err).WithUserID(userID)
	}

	// Counters changed outside the profile service; drop its cached view.
	s.profiles.InvalidateCache(ctx, userID)

	logger.Info().
		Str("user_id", userID).
		Str("dream_id", dream.ID).
		Str("emotion", emotion).
		Bool("premium", profile.IsPremium).
		Msg("Dream analyzed")

	return &AnalyzeResponse{
		ID:         dream.ID,
		Title:      dream.Title,
		ResultText: dream.Interpretation,
		ImageURL:   dream.ImageURL,
		Emotion:    dream.Emotion,
	}, nil
}

func (s *dreamService) History(ctx context.Context, userID string) ([]*models.Dream, error) {
	dreams, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list dreams", err).WithUserID(userID)
	}

	return dreams, nil
}

func (s *dreamService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrDreamNotFound) {
			return apperrors.NewDreamNotFoundError(id)
		}
		return apperrors.NewDatabaseError("delete dream", err)
	}

	return nil
}
