package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationsRenderInOrder(t *testing.T) {
	db := newTestDB(t)
	store := NewNotificationStore(db)

	require.NoError(t, store.Append("b1", "a1", "Alice"))
	require.NoError(t, store.Append("b1", "c1", "Carol"))

	lines, err := store.ListRendered("b1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice shared a post", "Carol shared a post"}, lines)
}

func TestNotificationsEmptySignal(t *testing.T) {
	db := newTestDB(t)
	store := NewNotificationStore(db)

	_, err := store.ListRendered("b1")
	assert.ErrorIs(t, err, ErrNoNotifications)
}

func TestNotificationsAreSeparatedPerRecipient(t *testing.T) {
	db := newTestDB(t)
	store := NewNotificationStore(db)

	require.NoError(t, store.Append("b1", "a1", "Alice"))

	_, err := store.ListRendered("b2")
	assert.ErrorIs(t, err, ErrNoNotifications)

	items, err := store.ListAll("b1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a1", items[0].SourceID)
}
