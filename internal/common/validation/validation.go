package validation

import (
	"fmt"
	"strings"
)

const (
	MaxDreamTextLength = 8000
	MaxUserIDLength    = 128
	MaxZodiacLength    = 32
	MaxChoiceLength    = 64

	MinDreamTextLength = 1
)

// ValidateUserID checks the caller-supplied user identifier.
func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user_id cannot be empty")
	}
	if len(userID) > MaxUserIDLength {
		return fmt.Errorf("user_id cannot exceed %d characters", MaxUserIDLength)
	}
	return nil
}

// ValidateDreamText checks the free-text dream narrative.
func ValidateDreamText(text string) error {
	text = strings.TrimSpace(text)
	if len(text) < MinDreamTextLength {
		return fmt.Errorf("dream_text cannot be empty")
	}
	if len(text) > MaxDreamTextLength {
		return fmt.Errorf("dream_text cannot exceed %d characters", MaxDreamTextLength)
	}
	return nil
}

// ValidateZodiac checks the optional zodiac label.
func ValidateZodiac(zodiac string) error {
	if len(zodiac) > MaxZodiacLength {
		return fmt.Errorf("zodiac cannot exceed %d characters", MaxZodiacLength)
	}
	return nil
}

// ValidateChoice checks the optional avatar choice.
func ValidateChoice(choice string) error {
	if len(choice) > MaxChoiceLength {
		return fmt.Errorf("choice cannot exceed %d characters", MaxChoiceLength)
	}
	return nil
}
