package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/crumb/internal/errors"
)

func TestFetch(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()
	cfg := testConfig()

	id := addRecipe(t, database, "https://www.instagram.com/reel/R42/")
	_, err := Update(ctx, database, cfg, UpdateInput{ID: id, Title: stringPtr("Soup"), BodyText: stringPtr("2 cups stock")})
	require.NoError(t, err)

	out, err := Fetch(ctx, database, FetchInput{ID: id})
	require.NoError(t, err)
	assert.Equal(t, "R42", out.PostIdentifier)
	assert.Equal(t, "Soup", out.Title)
	assert.Equal(t, "2 cups stock", out.BodyText)
	assert.Equal(t, 12, out.BodyChars)

	out, err = Fetch(ctx, database, FetchInput{ID: id, IncludeBody: boolPtr(false)})
	require.NoError(t, err)
	assert.Empty(t, out.BodyText)
	assert.Equal(t, 12, out.BodyChars)
}

func TestFetch_Errors(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	_, err := Fetch(ctx, database, FetchInput{ID: ""})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))

	_, err = Fetch(ctx, database, FetchInput{ID: "01NOPE"})
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
