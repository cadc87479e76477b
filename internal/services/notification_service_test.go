package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dias221467/LangBridge/internal/models"
	"github.com/Dias221467/LangBridge/internal/repository/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNotificationOwnership(t *testing.T) {
	ctx := context.Background()
	s := NewNotificationService(memstore.New(), time.Hour)
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()

	require.NoError(t, s.CreateNotification(ctx, owner, models.NotificationRequestReceived, "t", "m", nil))
	list, err := s.GetUserNotifications(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	id := list[0].ID

	assert.ErrorIs(t, s.MarkNotificationAsRead(ctx, id, other), ErrNotificationNotFound)
	assert.ErrorIs(t, s.DeleteNotification(ctx, id, other), ErrNotificationNotFound)

	require.NoError(t, s.MarkNotificationAsRead(ctx, id, owner))
	list, err = s.GetUserNotifications(ctx, owner)
	require.NoError(t, err)
	assert.True(t, list[0].Read)

	require.NoError(t, s.DeleteNotification(ctx, id, owner))
	list, err = s.GetUserNotifications(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteExpiredNotifications(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	s := NewNotificationService(store, time.Hour)
	userID := primitive.NewObjectID()

	base := time.Now()
	s.now = func() time.Time { return base.Add(-2 * time.Hour) }
	require.NoError(t, s.CreateNotification(ctx, userID, models.NotificationRequestAccepted, "old", "old", nil))
	s.now = func() time.Time { return base }
	require.NoError(t, s.CreateNotification(ctx, userID, models.NotificationRequestAccepted, "new", "new", nil))

	list, err := s.GetUserNotifications(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1, "expired notifications are not listed")
	assert.Equal(t, "new", list[0].Title)

	require.NoError(t, s.DeleteExpiredNotifications(ctx))
	deleted, err := store.DeleteExpiredNotifications(ctx, base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted, "only the fresh notification should remain for the second sweep")
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Someone", displayName(nil))
	assert.Equal(t, "Someone", displayName(&models.User{}))
	assert.Equal(t, "Ana", displayName(&models.User{FullName: "Ana"}))
}
