package ops

import (
	"context"
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/crumb/internal/config"
	"github.com/hpungsan/crumb/internal/errors"
	"github.com/hpungsan/crumb/internal/recipe"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// PageFetcher retrieves the HTML of a post page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// requireID trims id and rejects an empty one.
func requireID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.NewInvalidRequest("id is required")
	}
	return id, nil
}

// checkBodySize enforces the configured body length limit.
func checkBodySize(cfg *config.Config, body string) error {
	chars := recipe.CountChars(body)
	if cfg.BodyMaxChars > 0 && chars > cfg.BodyMaxChars {
		return errors.NewBodyTooLarge(cfg.BodyMaxChars, chars)
	}
	return nil
}

// clampPage applies limit defaults and bounds and a non-negative offset.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return limit, max(offset, 0)
}

// Monotonic entropy keeps IDs created within the same millisecond sorted.
var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
