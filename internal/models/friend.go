package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
)

// FriendRequest moves from pending to accepted exactly once.
type FriendRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID    primitive.ObjectID `bson:"sender" json:"sender"`
	RecipientID primitive.ObjectID `bson:"recipient" json:"recipient"`
	Status      RequestStatus      `bson:"status" json:"status"`
	PairKey     string             `bson:"pair_key" json:"-"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// PairKey is identical for (a, b) and (b, a).
func PairKey(a, b primitive.ObjectID) string {
	x, y := a.Hex(), b.Hex()
	if x > y {
		x, y = y, x
	}
	return x + ":" + y
}

// Counterpart returns the other party of the request.
func (r *FriendRequest) Counterpart(userID primitive.ObjectID) primitive.ObjectID {
	if r.SenderID == userID {
		return r.RecipientID
	}
	return r.SenderID
}

// FriendRequestView is a request with the counterpart user resolved.
type FriendRequestView struct {
	ID        primitive.ObjectID `json:"id"`
	Status    RequestStatus      `json:"status"`
	Sender    *PublicUser        `json:"sender,omitempty"`
	Recipient *PublicUser        `json:"recipient,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
