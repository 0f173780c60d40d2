package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/hpungsan/crumb/internal/db"
	"github.com/hpungsan/crumb/internal/errors"
	"github.com/hpungsan/crumb/internal/extract"
	"github.com/hpungsan/crumb/internal/recipe"
)

// AddInput contains parameters for the Add operation.
type AddInput struct {
	SourceURL string // required, stored as given (trimmed)
}

// AddOutput contains the result of the Add operation.
type AddOutput struct {
	ID             string `json:"id"`
	SourceURL      string `json:"source_url"`
	Recognized     bool   `json:"recognized"`
	PostIdentifier string `json:"post_identifier"`
}

// Add creates a recipe holding only its source URL. Capture fills in the
// rest later. Unrecognized URLs are accepted; Recognized reports the verdict.
func Add(ctx context.Context, database *sql.DB, input AddInput) (*AddOutput, error) {
	sourceURL := strings.TrimSpace(input.SourceURL)
	if sourceURL == "" {
		return nil, errors.NewInvalidRequest("source_url is required")
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	now := time.Now().Unix()
	r := &recipe.Recipe{
		ID:        id,
		SourceURL: sourceURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Insert(ctx, database, r); err != nil {
		return nil, err
	}

	return &AddOutput{
		ID:             id,
		SourceURL:      sourceURL,
		Recognized:     extract.IsRecognizedPostURL(sourceURL),
		PostIdentifier: r.PostIdentifier(),
	}, nil
}
