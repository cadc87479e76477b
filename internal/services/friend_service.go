package services

import (
	"context"
	"errors"

	"github.com/Dias221467/LangBridge/internal/database"
	"github.com/Dias221467/LangBridge/internal/models"
	"github.com/Dias221467/LangBridge/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendService handles business logic for friend requests and friend sets.
type FriendService struct {
	friendRepo    FriendRequestStore
	userRepo      UserStore
	tx            database.Transactor
	notifications *NotificationService
}

// NewFriendService creates a new FriendService. notifications may be nil.
func NewFriendService(friendRepo FriendRequestStore, userRepo UserStore, tx database.Transactor, notifications *NotificationService) *FriendService {
	return &FriendService{
		friendRepo:    friendRepo,
		userRepo:      userRepo,
		tx:            tx,
		notifications: notifications,
	}
}

// SendFriendRequest creates a pending request from sender to recipient. All preconditions are
// checked before anything is written.
func (s *FriendService) SendFriendRequest(ctx context.Context, senderID, recipientID primitive.ObjectID) (*models.FriendRequest, error) {
	if senderID == recipientID {
		return nil, ErrSelfRequest
	}

	recipient, err := s.userRepo.GetUserByID(ctx, recipientID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRecipientNotFound
	}
	if err != nil {
		return nil, storageError("load recipient", err)
	}

	if recipient.HasFriend(senderID) {
		return nil, ErrAlreadyFriends
	}

	_, err = s.friendRepo.FindRequestBetween(ctx, senderID, recipientID)
	if err == nil {
		return nil, ErrRequestAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, storageError("check existing request", err)
	}

	request, err := s.friendRepo.CreateRequest(ctx, &models.FriendRequest{
		SenderID:    senderID,
		RecipientID: recipientID,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		// lost a race with a concurrent request for the same pair
		return nil, ErrRequestAlreadyExists
	}
	if err != nil {
		return nil, storageError("create friend request", err)
	}

	logrus.WithFields(logrus.Fields{
		"requestID": request.ID.Hex(),
		"sender":    senderID.Hex(),
		"recipient": recipientID.Hex(),
	}).Info("Friend request created")

	if s.notifications != nil {
		sender, err := s.userRepo.GetUserByID(ctx, senderID)
		if err != nil {
			sender = nil
		}
		if err := s.notifications.NotifyRequestReceived(ctx, request, sender); err != nil {
			logrus.WithError(err).Warn("Failed to notify friend request recipient")
		}
	}

	return request, nil
}

// AcceptFriendRequest marks the request accepted and adds each party to the other's friend set
// in one transaction. Accepting an accepted request re-applies the set unions and succeeds.
func (s *FriendService) AcceptFriendRequest(ctx context.Context, requestID, actingUserID primitive.ObjectID) error {
	request, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRequestNotFound
	}
	if err != nil {
		return storageError("load friend request", err)
	}

	if request.RecipientID != actingUserID {
		return ErrForbidden
	}

	var firstAcceptance bool
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		changed, err := s.friendRepo.MarkAccepted(ctx, request.ID)
		if err != nil {
			return err
		}
		firstAcceptance = changed

		if err := s.userRepo.AddFriend(ctx, request.SenderID, request.RecipientID); err != nil {
			return err
		}
		return s.userRepo.AddFriend(ctx, request.RecipientID, request.SenderID)
	})
	if err != nil {
		return storageError("accept friend request", err)
	}

	logrus.WithFields(logrus.Fields{
		"requestID": requestID.Hex(),
		"sender":    request.SenderID.Hex(),
		"recipient": request.RecipientID.Hex(),
		"first":     firstAcceptance,
	}).Info("Friend request accepted")

	if firstAcceptance && s.notifications != nil {
		recipient, err := s.userRepo.GetUserByID(ctx, request.RecipientID)
		if err != nil {
			recipient = nil
		}
		if err := s.notifications.NotifyRequestAccepted(ctx, request, recipient); err != nil {
			logrus.WithError(err).Warn("Failed to notify friend request sender")
		}
	}

	return nil
}

// GetFriends returns the public profiles of the user's friends.
func (s *FriendService) GetFriends(ctx context.Context, userID primitive.ObjectID) ([]models.PublicUser, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storageError("load user", err)
	}

	if len(user.Friends) == 0 {
		return []models.PublicUser{}, nil
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, user.Friends)
	if err != nil {
		return nil, storageError("load friends", err)
	}

	publicFriends := make([]models.PublicUser, 0, len(users))
	for i := range users {
		publicFriends = append(publicFriends, users[i].Public())
	}
	return publicFriends, nil
}

// GetIncomingRequests lists pending requests sent to the user, with the sender resolved.
func (s *FriendService) GetIncomingRequests(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequestView, error) {
	requests, err := s.friendRepo.ListByRecipient(ctx, userID, models.StatusPending)
	if err != nil {
		return nil, storageError("list incoming requests", err)
	}
	return s.resolve(ctx, requests, func(r *models.FriendRequest) primitive.ObjectID { return r.SenderID })
}

// GetAcceptedRequests lists the user's sent requests that have been accepted.
func (s *FriendService) GetAcceptedRequests(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequestView, error) {
	requests, err := s.friendRepo.ListBySender(ctx, userID, models.StatusAccepted)
	if err != nil {
		return nil, storageError("list accepted requests", err)
	}
	return s.resolve(ctx, requests, func(r *models.FriendRequest) primitive.ObjectID { return r.RecipientID })
}

// GetOutgoingRequests lists the user's sent requests that are still pending.
func (s *FriendService) GetOutgoingRequests(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequestView, error) {
	requests, err := s.friendRepo.ListBySender(ctx, userID, models.StatusPending)
	if err != nil {
		return nil, storageError("list outgoing requests", err)
	}
	return s.resolve(ctx, requests, func(r *models.FriendRequest) primitive.ObjectID { return r.RecipientID })
}

// resolve loads the counterpart of every request in one query. Requests whose counterpart
// no longer exists are skipped.
func (s *FriendService) resolve(ctx context.Context, requests []models.FriendRequest, counterpart func(*models.FriendRequest) primitive.ObjectID) ([]models.FriendRequestView, error) {
	views := make([]models.FriendRequestView, 0, len(requests))
	if len(requests) == 0 {
		return views, nil
	}

	ids := make([]primitive.ObjectID, 0, len(requests))
	for i := range requests {
		ids = append(ids, counterpart(&requests[i]))
	}
	users, err := s.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, storageError("resolve request users", err)
	}
	byID := make(map[primitive.ObjectID]models.PublicUser, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].Public()
	}

	for i := range requests {
		req := &requests[i]
		other, ok := byID[counterpart(req)]
		if !ok {
			continue
		}
		view := models.FriendRequestView{
			ID:        req.ID,
			Status:    req.Status,
			CreatedAt: req.CreatedAt,
			UpdatedAt: req.UpdatedAt,
		}
		if other.ID == req.SenderID {
			view.Sender = &other
		} else {
			view.Recipient = &other
		}
		views = append(views, view)
	}
	return views, nil
}
