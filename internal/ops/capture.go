package ops

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/hpungsan/crumb/internal/config"
	"github.com/hpungsan/crumb/internal/db"
	"github.com/hpungsan/crumb/internal/errors"
	"github.com/hpungsan/crumb/internal/extract"
	"github.com/hpungsan/crumb/internal/page"
	"github.com/hpungsan/crumb/internal/recipe"
)

// AttachImageInput contains parameters for the AttachImage operation.
type AttachImageInput struct {
	ID   string
	Data []byte // raw image bytes (PNG, JPEG, WebP, GIF)
}

// AttachImageOutput contains the result of the AttachImage operation.
type AttachImageOutput struct {
	ID               string `json:"id"`
	MimeType         string `json:"mime_type"`
	Bytes            int    `json:"bytes"`
	IsFullyExtracted bool   `json:"is_fully_extracted"`
}

// AttachImage stores the captured image of a recipe, replacing any previous
// one. This is the first step of a capture.
func AttachImage(ctx context.Context, database *sql.DB, cfg *config.Config, input AttachImageInput) (*AttachImageOutput, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}
	if len(input.Data) == 0 {
		return nil, errors.NewInvalidRequest("image data is required")
	}
	if cfg.ImageMaxBytes > 0 && len(input.Data) > cfg.ImageMaxBytes {
		return nil, errors.NewImageTooLarge(cfg.ImageMaxBytes, len(input.Data))
	}

	mimeType := http.DetectContentType(input.Data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, errors.NewUnsupportedMedia(mimeType)
	}

	img := &recipe.Image{
		RecipeID: id,
		MimeType: mimeType,
		Data:     input.Data,
	}
	if err := db.SaveImage(ctx, database, img); err != nil {
		return nil, err
	}

	r, err := db.GetByID(ctx, database, id)
	if err != nil {
		return nil, err
	}

	return &AttachImageOutput{
		ID:               id,
		MimeType:         mimeType,
		Bytes:            len(input.Data),
		IsFullyExtracted: r.IsFullyExtracted,
	}, nil
}

// CaptureInput contains parameters for the Capture operation.
//
// Either Payload is given (the combined "<ocr>\n\n{{BODY}}<page>" form), or
// the parts are given separately: OCRText plus at most one of PageHTML and
// PageURL. PageURL is fetched with the operation's PageFetcher.
type CaptureInput struct {
	ID       string
	Payload  string
	OCRText  string
	PageHTML string
	PageURL  string
}

// CaptureOutput contains the result of the Capture operation.
type CaptureOutput struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	BodyChars        int    `json:"body_chars"`
	TitleExtracted   bool   `json:"title_extracted"`
	BodyExtracted    bool   `json:"body_extracted"`
	IsFullyExtracted bool   `json:"is_fully_extracted"`
}

// Capture runs the extraction pipeline over captured text and saves the
// results. A field whose extraction came back empty keeps its saved value.
func Capture(ctx context.Context, database *sql.DB, cfg *config.Config, fetcher PageFetcher, input CaptureInput) (*CaptureOutput, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}

	payload, err := buildPayload(ctx, fetcher, input)
	if err != nil {
		return nil, err
	}

	result := extract.Process(payload)
	if err := checkBodySize(cfg, result.Body); err != nil {
		return nil, err
	}

	r, err := db.GetByID(ctx, database, id)
	if err != nil {
		return nil, err
	}

	titleExtracted := result.Title != ""
	bodyExtracted := result.Body != ""
	if titleExtracted {
		r.Title = result.Title
	}
	if bodyExtracted {
		r.BodyText = result.Body
	}

	if titleExtracted || bodyExtracted {
		if err := db.UpdateContent(ctx, database, r); err != nil {
			return nil, err
		}
	}

	return &CaptureOutput{
		ID:               r.ID,
		Title:            r.Title,
		BodyChars:        recipe.CountChars(r.BodyText),
		TitleExtracted:   titleExtracted,
		BodyExtracted:    bodyExtracted,
		IsFullyExtracted: r.HasImage && r.Title != "",
	}, nil
}

// buildPayload assembles the combined capture payload from the input.
func buildPayload(ctx context.Context, fetcher PageFetcher, input CaptureInput) (string, error) {
	hasParts := input.OCRText != "" || input.PageHTML != "" || input.PageURL != ""
	if input.Payload != "" {
		if hasParts {
			return "", errors.NewInvalidRequest("payload cannot be combined with ocr_text, page_html or page_url")
		}
		return input.Payload, nil
	}
	if !hasParts {
		return "", errors.NewInvalidRequest("payload or captured text is required")
	}
	if input.PageHTML != "" && input.PageURL != "" {
		return "", errors.NewInvalidRequest("page_html and page_url are mutually exclusive")
	}

	rawHTML := input.PageHTML
	if input.PageURL != "" {
		if fetcher == nil {
			return "", errors.NewInvalidRequest("page fetching is not available")
		}
		fetched, err := fetcher.Fetch(ctx, input.PageURL)
		if err != nil {
			return "", err
		}
		rawHTML = fetched
	}
	return joinPage(input.OCRText, rawHTML)
}

// joinPage extracts the page text from rawHTML (if any) and joins it with
// the OCR text.
func joinPage(ocrText, rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return extract.JoinPayload(ocrText, ""), nil
	}
	doc, err := page.ExtractText(rawHTML)
	if err != nil {
		return "", err
	}
	return extract.JoinPayload(ocrText, doc.Text), nil
}
