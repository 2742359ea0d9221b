package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTitleEmotion(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantTitle   string
		wantEmotion string
	}{
		{
			name:        "title and emotion",
			input:       "Echoes of Silence | Fear",
			wantTitle:   "Echoes of Silence",
			wantEmotion: "Fear",
		},
		{
			name:        "no delimiter keeps whole text as title",
			input:       "Just a title, no bar",
			wantTitle:   "Just a title, no bar",
			wantEmotion: FallbackEmotion,
		},
		{
			name:        "empty input falls back entirely",
			input:       "",
			wantTitle:   FallbackTitle,
			wantEmotion: FallbackEmotion,
		},
		{
			name:        "whitespace only",
			input:       "   \n\t  ",
			wantTitle:   FallbackTitle,
			wantEmotion: FallbackEmotion,
		},
		{
			name:        "quoted title and trailing period",
			input:       `"Gökyüzünde Uçuş" | Özgürlük.`,
			wantTitle:   "Gökyüzünde Uçuş",
			wantEmotion: "Özgürlük",
		},
		{
			name:        "extra segments beyond the second are ignored",
			input:       "Title | Joy | ignored tail",
			wantTitle:   "Title",
			wantEmotion: "Joy",
		},
		{
			name:        "delimiter with empty emotion",
			input:       "Lonely Road |",
			wantTitle:   "Lonely Road",
			wantEmotion: FallbackEmotion,
		},
		{
			name:        "delimiter with empty title",
			input:       "| Sadness",
			wantTitle:   FallbackTitle,
			wantEmotion: "Sadness",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, emotion := ParseTitleEmotion(tt.input)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantEmotion, emotion)
		})
	}
}
