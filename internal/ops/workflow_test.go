package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/crumb/internal/errors"
	"github.com/hpungsan/crumb/internal/extract"
)

// TestFullWorkflow exercises the complete recipe lifecycle:
// add → attach image → capture → import → update → list → search → delete → fetch (not found)
func TestFullWorkflow(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()
	cfg := testConfig()

	// 1. Add
	addOut, err := Add(ctx, database, AddInput{SourceURL: "https://www.instagram.com/p/FLOW1/?igsh=abc"})
	require.NoError(t, err)
	require.True(t, addOut.Recognized)
	require.Equal(t, "FLOW1", addOut.PostIdentifier)
	id := addOut.ID

	// 2. Attach image (capture step one)
	imgOut, err := AttachImage(ctx, database, cfg, AttachImageInput{ID: id, Data: pngHeader})
	require.NoError(t, err)
	require.False(t, imgOut.IsFullyExtracted)

	// 3. Capture text (capture step two)
	payload := extract.JoinPayload(
		"chef_mike • Follow\nSmashed potatoes with herbs… more",
		"chef_mike on June 1, 2024:\nSmashed potatoes with herbs\n\nBoil, smash, roast.",
	)
	capOut, err := Capture(ctx, database, cfg, nil, CaptureInput{ID: id, Payload: payload})
	require.NoError(t, err)
	require.Equal(t, "Smashed potatoes with herbs", capOut.Title)
	require.True(t, capOut.IsFullyExtracted)

	// 4. Import more text from a second screenshot
	_, err = Import(ctx, database, cfg, ImportInput{ID: id, Text: "Serve with aioli\nLog in"})
	require.NoError(t, err)

	fetchOut, err := Fetch(ctx, database, FetchInput{ID: id})
	require.NoError(t, err)
	require.Equal(t, "Smashed potatoes with herbs\n\nBoil, smash, roast.\n\nServe with aioli", fetchOut.BodyText)

	// 5. Update title
	_, err = Update(ctx, database, cfg, UpdateInput{ID: id, Title: stringPtr("Crispy smashed potatoes")})
	require.NoError(t, err)

	// 6. List
	listOut, err := List(ctx, database, ListInput{})
	require.NoError(t, err)
	require.Len(t, listOut.Items, 1)
	require.Equal(t, "Crispy smashed potatoes", listOut.Items[0].Title)
	require.True(t, listOut.Items[0].IsFullyExtracted)

	// 7. Search
	searchOut, err := Search(ctx, database, SearchInput{Query: "aioli"})
	require.NoError(t, err)
	require.Len(t, searchOut.Items, 1)

	// 8. Delete
	delOut, err := Delete(ctx, database, DeleteInput{ID: id})
	require.NoError(t, err)
	require.True(t, delOut.Deleted)

	// 9. Fetch - gone
	_, err = Fetch(ctx, database, FetchInput{ID: id})
	require.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = Delete(ctx, database, DeleteInput{ID: id})
	require.True(t, errors.Is(err, errors.ErrNotFound))
}
