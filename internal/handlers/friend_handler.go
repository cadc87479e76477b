package handlers

import (
	"net/http"

	"github.com/Dias221467/LangBridge/internal/models"
	"github.com/Dias221467/LangBridge/internal/services"
	log "github.com/sirupsen/logrus"
)

// FriendHandler manages HTTP endpoints related to friend requests.
type FriendHandler struct {
	Service *services.FriendService
}

// NewFriendHandler initializes a new FriendHandler.
func NewFriendHandler(service *services.FriendService) *FriendHandler {
	return &FriendHandler{Service: service}
}

// SendFriendRequestHandler sends a friend request to the user in the path.
func (h *FriendHandler) SendFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	senderID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	recipientID, ok := pathObjectID(w, r, "id", "user ID")
	if !ok {
		return
	}

	req, err := h.Service.SendFriendRequest(r.Context(), senderID, recipientID)
	if err != nil {
		log.WithFields(log.Fields{
			"sender":    senderID.Hex(),
			"recipient": recipientID.Hex(),
		}).WithError(err).Warn("Friend request rejected")
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, req)
}

// AcceptFriendRequestHandler accepts a request addressed to the caller.
func (h *FriendHandler) AcceptFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	requestID, ok := pathObjectID(w, r, "id", "request ID")
	if !ok {
		return
	}

	if err := h.Service.AcceptFriendRequest(r.Context(), requestID, userID); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Friend request accepted")
}

type friendRequestsResponse struct {
	Incoming []models.FriendRequestView `json:"incoming"`
	Accepted []models.FriendRequestView `json:"accepted"`
}

// GetFriendRequestsHandler lists pending requests to the caller and the caller's
// requests that were accepted.
func (h *FriendHandler) GetFriendRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	incoming, err := h.Service.GetIncomingRequests(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	accepted, err := h.Service.GetAcceptedRequests(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, friendRequestsResponse{Incoming: incoming, Accepted: accepted})
}

// GetOutgoingRequestsHandler lists the caller's pending requests.
func (h *FriendHandler) GetOutgoingRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	outgoing, err := h.Service.GetOutgoingRequests(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, outgoing)
}

// GetFriendsHandler lists the caller's friends.
func (h *FriendHandler) GetFriendsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	friends, err := h.Service.GetFriends(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, friends)
}
