package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/LangBridge/internal/models"
	"github.com/Dias221467/LangBridge/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService struct {
	repo NotificationStore
	ttl  time.Duration
	now  func() time.Time
}

func NewNotificationService(repo NotificationStore, ttl time.Duration) *NotificationService {
	return &NotificationService{
		repo: repo,
		ttl:  ttl,
		now:  time.Now,
	}
}

// CreateNotification logs a new notification for a user
func (s *NotificationService) CreateNotification(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, targetID *primitive.ObjectID) error {
	now := s.now()
	notif := &models.Notification{
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		TargetID:  targetID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.CreateNotification(ctx, notif); err != nil {
		return storageError("create notification", err)
	}
	return nil
}

// NotifyRequestReceived tells the recipient that sender wants to connect.
func (s *NotificationService) NotifyRequestReceived(ctx context.Context, req *models.FriendRequest, sender *models.User) error {
	return s.CreateNotification(ctx, req.RecipientID, models.NotificationRequestReceived,
		"New friend request",
		fmt.Sprintf("%s wants to practice languages with you.", displayName(sender)),
		&req.ID,
	)
}

// NotifyRequestAccepted tells the original sender that recipient accepted.
func (s *NotificationService) NotifyRequestAccepted(ctx context.Context, req *models.FriendRequest, recipient *models.User) error {
	return s.CreateNotification(ctx, req.SenderID, models.NotificationRequestAccepted,
		"Friend request accepted",
		fmt.Sprintf("%s accepted your friend request.", displayName(recipient)),
		&req.ID,
	)
}

// GetUserNotifications returns all live notifications for a user
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	notifications, err := s.repo.GetUserNotifications(ctx, userID)
	if err != nil {
		return nil, storageError("list notifications", err)
	}
	return notifications, nil
}

// MarkNotificationAsRead sets the "read" status of the user's notification to true
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, notifID, userID primitive.ObjectID) error {
	return s.ownedResult(s.repo.MarkAsRead(ctx, notifID, userID), "mark notification as read")
}

// DeleteNotification deletes one of the user's notifications
func (s *NotificationService) DeleteNotification(ctx context.Context, notifID, userID primitive.ObjectID) error {
	return s.ownedResult(s.repo.DeleteNotification(ctx, notifID, userID), "delete notification")
}

func (s *NotificationService) ownedResult(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotificationNotFound
	default:
		return storageError(op, err)
	}
}

// DeleteExpiredNotifications is run periodically by the scheduler.
func (s *NotificationService) DeleteExpiredNotifications(ctx context.Context) error {
	deleted, err := s.repo.DeleteExpiredNotifications(ctx, s.now())
	if err != nil {
		return storageError("delete expired notifications", err)
	}
	logrus.Infof("Deleted %d expired notifications", deleted)
	return nil
}

func displayName(u *models.User) string {
	if u == nil || u.FullName == "" {
		return "Someone"
	}
	return u.FullName
}
