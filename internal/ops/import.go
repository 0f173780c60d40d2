package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/crumb/internal/config"
	"github.com/hpungsan/crumb/internal/db"
	"github.com/hpungsan/crumb/internal/errors"
	"github.com/hpungsan/crumb/internal/extract"
	"github.com/hpungsan/crumb/internal/recipe"
)

// ImportMode controls how imported text combines with the saved body.
type ImportMode string

const (
	ImportModeAppend  ImportMode = "append"  // default: add after the saved body
	ImportModeReplace ImportMode = "replace" // discard the saved body
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	ID   string
	Text string     // OCR text from one or more screenshots
	Mode ImportMode // default: ImportModeAppend
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	ID          string     `json:"id"`
	Mode        ImportMode `json:"mode"`
	AddedChars  int        `json:"added_chars"`
	BodyChars   int        `json:"body_chars"`
	TitleFilled bool       `json:"title_filled"`
}

// Import adds text recognized from screenshots to a recipe's body. Chrome
// lines are dropped and the rest goes through the body cleaner. A recipe
// without a title takes the caption found in the same text.
func Import(ctx context.Context, database *sql.DB, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, errors.NewInvalidRequest("text is required")
	}
	if input.Mode == "" {
		input.Mode = ImportModeAppend
	}
	if input.Mode != ImportModeAppend && input.Mode != ImportModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: append, replace")
	}

	r, err := db.GetByID(ctx, database, id)
	if err != nil {
		return nil, err
	}

	cleaned := extract.CleanBodyText(extract.OCRVocabulary.StripChrome(input.Text))

	body := cleaned
	if input.Mode == ImportModeAppend {
		body = recipe.AppendBody(r.BodyText, cleaned)
	}
	if err := checkBodySize(cfg, body); err != nil {
		return nil, err
	}
	r.BodyText = body

	titleFilled := false
	if r.Title == "" {
		if caption := extract.ExtractCaption(input.Text); caption != "" {
			r.Title = caption
			titleFilled = true
		}
	}

	if err := db.UpdateContent(ctx, database, r); err != nil {
		return nil, err
	}

	return &ImportOutput{
		ID:          r.ID,
		Mode:        input.Mode,
		AddedChars:  recipe.CountChars(cleaned),
		BodyChars:   r.BodyChars,
		TitleFilled: titleFilled,
	}, nil
}
