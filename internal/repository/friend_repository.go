package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/LangBridge/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FriendRepository struct {
	collection *mongo.Collection
}

func NewFriendRepository(db *mongo.Database) *FriendRepository {
	return &FriendRepository{
		collection: db.Collection("friend_requests"),
	}
}

// CreateRequest inserts a pending request. The unique pair_key index turns a concurrent
// duplicate into ErrDuplicate.
func (r *FriendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error) {
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	req.Status = models.StatusPending
	req.PairKey = models.PairKey(req.SenderID, req.RecipientID)

	result, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to send friend request: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	req.ID = insertedID

	return req, nil
}

func (r *FriendRepository) GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindRequestBetween returns the request for the unordered pair, whichever side sent it.
func (r *FriendRepository) FindRequestBetween(ctx context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error) {
	return r.findOne(ctx, bson.M{"pair_key": models.PairKey(a, b)})
}

func (r *FriendRepository) findOne(ctx context.Context, filter bson.M) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.collection.FindOne(ctx, filter).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find friend request: %w", err)
	}
	return &request, nil
}

// MarkAccepted moves a pending request to accepted. It reports false when the request
// was already accepted.
func (r *FriendRepository) MarkAccepted(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.StatusPending},
		bson.M{"$set": bson.M{"status": models.StatusAccepted, "updated_at": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update request status: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *FriendRepository) ListByRecipient(ctx context.Context, recipientID primitive.ObjectID, status models.RequestStatus) ([]models.FriendRequest, error) {
	return r.find(ctx, bson.M{"recipient": recipientID, "status": status})
}

func (r *FriendRepository) ListBySender(ctx context.Context, senderID primitive.ObjectID, status models.RequestStatus) ([]models.FriendRequest, error) {
	return r.find(ctx, bson.M{"sender": senderID, "status": status})
}

// PendingCounterparts returns every user with a pending request to or from userID.
func (r *FriendRepository) PendingCounterparts(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	requests, err := r.find(ctx, bson.M{
		"status": models.StatusPending,
		"$or": []bson.M{
			{"sender": userID},
			{"recipient": userID},
		},
	})
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(requests))
	for i := range requests {
		ids = append(ids, requests[i].Counterpart(userID))
	}
	return ids, nil
}

func (r *FriendRepository) find(ctx context.Context, filter bson.M) ([]models.FriendRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find friend requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests := []models.FriendRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode friend requests: %w", err)
	}
	return requests, nil
}
