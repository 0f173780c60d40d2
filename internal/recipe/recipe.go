package recipe

import "github.com/hpungsan/crumb/internal/extract"

// UnknownPostID is reported when a source URL carries no post identifier.
const UnknownPostID = "unknown"

// Recipe is a captured social-media recipe post.
type Recipe struct {
	// ID is a ULID that uniquely identifies this recipe
	ID string `json:"id"`

	// SourceURL is the post URL as shared or pasted; never validated
	SourceURL string `json:"source_url"`

	// Title is the extracted caption, editable by the user
	Title string `json:"title"`

	// BodyText is the cleaned page text, editable by the user
	BodyText string `json:"body_text"`

	// BodyChars is the body character count (runes, not bytes)
	BodyChars int `json:"body_chars"`

	// HasImage is true once a captured image has been attached.
	// The image itself is stored out of line (see Image).
	HasImage bool `json:"has_image"`

	// IsFullyExtracted is true once the recipe has both an image and a title
	IsFullyExtracted bool `json:"is_fully_extracted"`

	// CreatedAt is the Unix timestamp when the recipe was created
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp when the recipe was last updated
	UpdatedAt int64 `json:"updated_at"`
}

// Image is a captured screenshot or thumbnail for a recipe.
type Image struct {
	RecipeID  string `json:"recipe_id"`
	MimeType  string `json:"mime_type"`
	Data      []byte `json:"-"`
	CreatedAt int64  `json:"created_at"`
}

// PostIdentifier derives the post identifier from SourceURL, or
// UnknownPostID when there is none.
func (r *Recipe) PostIdentifier() string {
	return PostIdentifier(r.SourceURL)
}

// Refresh recomputes the derived fields after Title, BodyText or HasImage
// change.
func (r *Recipe) Refresh() {
	r.BodyChars = CountChars(r.BodyText)
	r.IsFullyExtracted = r.HasImage && r.Title != ""
}

// PostIdentifier derives the post identifier from a source URL.
func PostIdentifier(sourceURL string) string {
	if id, ok := extract.ExtractPostIdentifier(sourceURL); ok {
		return id
	}
	return UnknownPostID
}
