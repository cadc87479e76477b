package services

import (
	"context"
	"time"

	"github.com/Dias221467/LangBridge/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the user persistence the services need. Implemented by
// repository.UserRepository and memstore.Store.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error)
	TouchLastActive(ctx context.Context, id primitive.ObjectID) error
	AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
	FindCandidates(ctx context.Context, q models.CandidateQuery) ([]models.User, error)
}

// FriendRequestStore persists friend requests.
type FriendRequestStore interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error)
	GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error)
	FindRequestBetween(ctx context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error)
	MarkAccepted(ctx context.Context, id primitive.ObjectID) (bool, error)
	ListByRecipient(ctx context.Context, recipientID primitive.ObjectID, status models.RequestStatus) ([]models.FriendRequest, error)
	ListBySender(ctx context.Context, senderID primitive.ObjectID, status models.RequestStatus) ([]models.FriendRequest, error)
	PendingCounterparts(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// NotificationStore persists notifications.
type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) error
	DeleteNotification(ctx context.Context, id, userID primitive.ObjectID) error
	DeleteExpiredNotifications(ctx context.Context, now time.Time) (int64, error)
}
