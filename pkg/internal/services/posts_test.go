package services

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostsAppendToAuthorListInOrder(t *testing.T) {
	db := newTestDB(t)
	posts := NewPosts(db)
	author := seedAccount(t, db, "alice", "Alice", "alice01")

	_, err := posts.New(author, "img-1", nil)
	require.NoError(t, err)
	_, err = posts.New(author, "img-2", nil)
	require.NoError(t, err)

	items, err := posts.ListByAuthor("alice")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "img-1", items[0].Attachment)
	assert.Equal(t, "img-2", items[1].Attachment)
}

func TestPostsDetectCaptionLanguage(t *testing.T) {
	db := newTestDB(t)
	posts := NewPosts(db)
	author := seedAccount(t, db, "alice", "Alice", "alice01")

	item, err := posts.New(author, "img-1", lo.ToPtr("a lovely sunset at the beach with friends"))
	require.NoError(t, err)
	assert.Equal(t, "en", item.Language)

	item, err = posts.New(author, "img-2", nil)
	require.NoError(t, err)
	assert.Empty(t, item.Language)
}
