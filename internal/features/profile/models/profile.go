package models

import "time"

// Interpreter persona values recognized by the analysis prompt builder.
// Anything else falls back to the psychological persona.
const (
	InterpreterPsychological = "psychological"
	InterpreterReligious     = "religious"
	InterpreterSpiritual     = "spiritual"
)

// Profile is the per-user entitlement and preference record.
type Profile struct {
	UserID             string    `json:"user_id"`
	Choice             string    `json:"choice"`
	Zodiac             string    `json:"zodiac"`
	InterpreterType    string    `json:"interpreter_type"`
	IsPremium          bool      `json:"is_premium"`
	DailyUsageCount    int       `json:"daily_usage_count"`
	LifetimeUsageCount int       `json:"lifetime_usage_count"`
	LastUsageDate      time.Time `json:"last_usage_date"`
}

// NewDefaultProfile returns the implicit profile materialized on first use.
func NewDefaultProfile(userID string) *Profile {
	return &Profile{
		UserID:        userID,
		LastUsageDate: time.Now(),
	}
}

// ProfileResponse is the public get-profile payload. UsageCount carries the
// lifetime counter, the value the entitlement gate checks.
type ProfileResponse struct {
	Choice          string `json:"choice"`
	Zodiac          string `json:"zodiac"`
	InterpreterType string `json:"interpreter_type"`
	IsPremium       bool   `json:"is_premium"`
	UsageCount      int    `json:"usage_count"`
}

// ToResponse maps a profile onto the public payload, normalizing an absent
// interpreter type to the default persona.
func (p *Profile) ToResponse() *ProfileResponse {
	interpreterType := p.InterpreterType
	if interpreterType == "" {
		interpreterType = InterpreterPsychological
	}

	return &ProfileResponse{
		Choice:          p.Choice,
		Zodiac:          p.Zodiac,
		InterpreterType: interpreterType,
		IsPremium:       p.IsPremium,
		UsageCount:      p.LifetimeUsageCount,
	}
}
