package recipe

// Summary is a recipe's metadata without the body text.
// Used for browse operations (list, latest, search) to reduce data transfer.
type Summary struct {
	ID               string `json:"id"`
	SourceURL        string `json:"source_url"`
	PostIdentifier   string `json:"post_identifier"`
	Title            string `json:"title"`
	BodyChars        int    `json:"body_chars"`
	HasImage         bool   `json:"has_image"`
	IsFullyExtracted bool   `json:"is_fully_extracted"`
	CreatedAt        int64  `json:"created_at"`
	UpdatedAt        int64  `json:"updated_at"`
}

// ToSummary converts a Recipe to a Summary by stripping the body text.
func (r *Recipe) ToSummary() Summary {
	return Summary{
		ID:               r.ID,
		SourceURL:        r.SourceURL,
		PostIdentifier:   r.PostIdentifier(),
		Title:            r.Title,
		BodyChars:        r.BodyChars,
		HasImage:         r.HasImage,
		IsFullyExtracted: r.IsFullyExtracted,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
