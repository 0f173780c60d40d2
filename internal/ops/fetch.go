package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/crumb/internal/db"
	"github.com/hpungsan/crumb/internal/recipe"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID          string
	IncludeBody *bool // default: true (nil means default)
}

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	recipe.Recipe         // embedded (copy, not pointer)
	PostIdentifier string `json:"post_identifier"`
}

// Fetch retrieves a recipe by ID.
func Fetch(ctx context.Context, database *sql.DB, input FetchInput) (*FetchOutput, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}

	r, err := db.GetByID(ctx, database, id)
	if err != nil {
		return nil, err
	}

	output := &FetchOutput{
		Recipe:         *r,
		PostIdentifier: r.PostIdentifier(),
	}

	includeBody := true
	if input.IncludeBody != nil {
		includeBody = *input.IncludeBody
	}
	if !includeBody {
		output.BodyText = ""
	}

	return output, nil
}

// ImageInput contains parameters for the Image operation.
type ImageInput struct {
	ID string
}

// Image retrieves the captured image of a recipe.
func Image(ctx context.Context, database *sql.DB, input ImageInput) (*recipe.Image, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}
	return db.GetImage(ctx, database, id)
}
