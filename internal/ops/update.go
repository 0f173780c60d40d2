package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/crumb/internal/config"
	"github.com/hpungsan/crumb/internal/db"
	"github.com/hpungsan/crumb/internal/errors"
)

// UpdateInput contains parameters for the Update operation.
type UpdateInput struct {
	ID string

	// Editable fields (nil = don't change)
	Title    *string
	BodyText *string
}

// UpdateOutput contains the result of the Update operation.
type UpdateOutput struct {
	ID               string `json:"id"`
	BodyChars        int    `json:"body_chars"`
	IsFullyExtracted bool   `json:"is_fully_extracted"`
}

// Update applies user edits to an existing recipe.
func Update(ctx context.Context, database *sql.DB, cfg *config.Config, input UpdateInput) (*UpdateOutput, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title == nil && input.BodyText == nil {
		return nil, errors.NewInvalidRequest("at least one editable field must be provided")
	}

	r, err := db.GetByID(ctx, database, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		r.Title = *input.Title
	}

	if input.BodyText != nil {
		if err := checkBodySize(cfg, *input.BodyText); err != nil {
			return nil, err
		}
		r.BodyText = *input.BodyText
	}

	if err := db.UpdateContent(ctx, database, r); err != nil {
		return nil, err
	}

	return &UpdateOutput{
		ID:               r.ID,
		BodyChars:        r.BodyChars,
		IsFullyExtracted: r.IsFullyExtracted,
	}, nil
}
