package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/crumb/internal/db"
	"github.com/hpungsan/crumb/internal/recipe"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit  int // default: 20, max: 100
	Offset int // default: 0
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []recipe.Summary `json:"items"`
	Pagination Pagination       `json:"pagination"`
	Sort       string           `json:"sort"`
}

// List retrieves recipe summaries, newest first, with pagination.
func List(ctx context.Context, database *sql.DB, input ListInput) (*ListOutput, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	summaries, total, err := db.List(ctx, database, limit, offset)
	if err != nil {
		return nil, err
	}

	// Ensure we return an empty array rather than nil
	if summaries == nil {
		summaries = []recipe.Summary{}
	}

	return &ListOutput{
		Items: summaries,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(summaries) < total,
			Total:   total,
		},
		Sort: "created_at_desc",
	}, nil
}

// LatestInput contains parameters for the Latest operation.
type LatestInput struct {
	IncludeBody *bool // default: false (summary only)
}

// LatestOutput contains the result of the Latest operation.
type LatestOutput struct {
	Item *LatestItem `json:"item"` // nil if there are no recipes
}

// LatestItem contains the latest recipe with optional body text.
type LatestItem struct {
	recipe.Summary
	BodyText string `json:"body_text,omitempty"` // only if include_body
}

// Latest retrieves the most recently created recipe.
func Latest(ctx context.Context, database *sql.DB, input LatestInput) (*LatestOutput, error) {
	r, err := db.GetLatest(ctx, database)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return &LatestOutput{Item: nil}, nil
	}

	item := &LatestItem{Summary: r.ToSummary()}
	if input.IncludeBody != nil && *input.IncludeBody {
		item.BodyText = r.BodyText
	}
	return &LatestOutput{Item: item}, nil
}
