package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPayload(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantOCR  string
		wantPage string
	}{
		{
			name:     "combined",
			payload:  "ocr line\n\n{{BODY}}page line",
			wantOCR:  "ocr line",
			wantPage: "page line",
		},
		{
			name:     "no marker",
			payload:  "ocr only\nsecond line",
			wantOCR:  "ocr only\nsecond line",
			wantPage: "",
		},
		{
			name:     "marker without preceding newlines",
			payload:  "ocr{{BODY}}page",
			wantOCR:  "ocr",
			wantPage: "page",
		},
		{
			name:     "empty ocr part",
			payload:  "\n\n{{BODY}}page",
			wantOCR:  "",
			wantPage: "page",
		},
		{
			name:     "empty",
			payload:  "",
			wantOCR:  "",
			wantPage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ocr, page := SplitPayload(tt.payload)
			assert.Equal(t, tt.wantOCR, ocr)
			assert.Equal(t, tt.wantPage, page)
		})
	}
}

func TestJoinPayload_RoundTrip(t *testing.T) {
	payload := JoinPayload("caption… more", "body text")
	require.Equal(t, "caption… more\n\n{{BODY}}body text", payload)

	ocr, page := SplitPayload(payload)
	assert.Equal(t, "caption… more", ocr)
	assert.Equal(t, "body text", page)

	assert.Equal(t, "ocr only", JoinPayload("ocr only", ""))
}

func TestProcess(t *testing.T) {
	payload := JoinPayload(
		"chef_mike • Follow\nOne-pot chicken orzo... more\nLog in",
		"chef_mike on March 3, 2024:\nOne-pot chicken orzo\n\n1 cup orzo\n2 chicken thighs\n1,234 likes, 56 comments",
	)

	got := Process(payload)
	assert.Equal(t, "One-pot chicken orzo", got.Title)
	assert.Equal(t, "One-pot chicken orzo\n\n1 cup orzo\n2 chicken thighs", got.Body)
}

func TestProcess_OCROnly(t *testing.T) {
	got := Process("Open app\nGarlic butter salmon bites for dinner")
	assert.Equal(t, "Garlic butter salmon bites for dinner", got.Title)
	assert.Empty(t, got.Body)
}
