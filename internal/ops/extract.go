package ops

import (
	"strings"

	"github.com/hpungsan/crumb/internal/errors"
	"github.com/hpungsan/crumb/internal/extract"
	"github.com/hpungsan/crumb/internal/recipe"
)

// ExtractInput contains parameters for the Extract operation.
type ExtractInput struct {
	Payload string // "<ocr>\n\n{{BODY}}<page>", or OCR text alone
}

// ExtractOutput contains the result of the Extract operation.
type ExtractOutput struct {
	Title          string `json:"title"`
	Body           string `json:"body"`
	TitleExtracted bool   `json:"title_extracted"`
	BodyExtracted  bool   `json:"body_extracted"`
}

// Extract runs the extraction pipeline without touching the store.
func Extract(input ExtractInput) (*ExtractOutput, error) {
	if strings.TrimSpace(input.Payload) == "" {
		return nil, errors.NewInvalidRequest("payload is required")
	}

	result := extract.Process(input.Payload)
	return &ExtractOutput{
		Title:          result.Title,
		Body:           result.Body,
		TitleExtracted: result.Title != "",
		BodyExtracted:  result.Body != "",
	}, nil
}

// CheckURLInput contains parameters for the CheckURL operation.
type CheckURLInput struct {
	URL string
}

// CheckURLOutput contains the result of the CheckURL operation.
type CheckURLOutput struct {
	URL            string `json:"url"`
	Recognized     bool   `json:"recognized"`
	PostIdentifier string `json:"post_identifier"`
}

// CheckURL classifies a URL without storing anything.
func CheckURL(input CheckURLInput) (*CheckURLOutput, error) {
	url := strings.TrimSpace(input.URL)
	if url == "" {
		return nil, errors.NewInvalidRequest("url is required")
	}

	return &CheckURLOutput{
		URL:            url,
		Recognized:     extract.IsRecognizedPostURL(url),
		PostIdentifier: recipe.PostIdentifier(url),
	}, nil
}
