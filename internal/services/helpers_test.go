package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dias221467/LangBridge/internal/models"
	"github.com/Dias221467/LangBridge/internal/repository/memstore"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testEnv struct {
	store         *memstore.Store
	friends       *FriendService
	matches       *MatchService
	notifications *NotificationService
}

func newTestEnv() *testEnv {
	store := memstore.New()
	notifications := NewNotificationService(store, time.Hour)
	return &testEnv{
		store:         store,
		friends:       NewFriendService(store, store, store, notifications),
		matches:       NewMatchService(store, store),
		notifications: notifications,
	}
}

// addUser stores an onboarded user with the given languages.
func (e *testEnv) addUser(t *testing.T, name, email string, native, learning models.Language) primitive.ObjectID {
	t.Helper()
	u, err := e.store.CreateUser(context.Background(), &models.User{
		FullName:         name,
		Email:            email,
		NativeLanguage:   native,
		LearningLanguage: learning,
		IsOnboarded:      true,
	})
	require.NoError(t, err)
	return u.ID
}

func (e *testEnv) addNewcomer(t *testing.T, name, email string) primitive.ObjectID {
	t.Helper()
	u, err := e.store.CreateUser(context.Background(), &models.User{FullName: name, Email: email})
	require.NoError(t, err)
	return u.ID
}

func (e *testEnv) befriend(t *testing.T, a, b primitive.ObjectID) {
	t.Helper()
	ctx := context.Background()
	req, err := e.friends.SendFriendRequest(ctx, a, b)
	require.NoError(t, err)
	require.NoError(t, e.friends.AcceptFriendRequest(ctx, req.ID, b))
}

func (e *testEnv) user(t *testing.T, id primitive.ObjectID) *models.User {
	t.Helper()
	u, err := e.store.GetUserByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func candidateIDs(users []models.PublicUser) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}
