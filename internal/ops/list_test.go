package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_NewestFirstWithPagination(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	ids := make([]string, 3)
	for i := range ids {
		ids[i] = addRecipe(t, database, "https://www.instagram.com/p/L"+string(rune('A'+i))+"/")
	}

	out, err := List(ctx, database, ListInput{Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, ids[2], out.Items[0].ID)
	assert.Equal(t, ids[1], out.Items[1].ID)
	assert.Equal(t, "LC", out.Items[0].PostIdentifier)
	assert.Equal(t, Pagination{Limit: 2, Offset: 0, HasMore: true, Total: 3}, out.Pagination)
	assert.Equal(t, "created_at_desc", out.Sort)

	out, err = List(ctx, database, ListInput{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, ids[0], out.Items[0].ID)
	assert.False(t, out.Pagination.HasMore)
}

func TestList_Empty(t *testing.T) {
	database := setupDB(t)

	out, err := List(context.Background(), database, ListInput{})
	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
	assert.Equal(t, DefaultListLimit, out.Pagination.Limit)
}

func TestLatest(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	out, err := Latest(ctx, database, LatestInput{})
	require.NoError(t, err)
	assert.Nil(t, out.Item)

	addRecipe(t, database, "https://www.instagram.com/p/OLD/")
	id := addRecipe(t, database, "https://www.instagram.com/p/NEW/")
	_, err = Update(ctx, database, testConfig(), UpdateInput{ID: id, BodyText: stringPtr("body")})
	require.NoError(t, err)

	out, err = Latest(ctx, database, LatestInput{})
	require.NoError(t, err)
	require.NotNil(t, out.Item)
	assert.Equal(t, id, out.Item.ID)
	assert.Empty(t, out.Item.BodyText)

	out, err = Latest(ctx, database, LatestInput{IncludeBody: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "body", out.Item.BodyText)
}
