package handlers

import (
	"errors"
	"net/http"

	"github.com/Dias221467/LangBridge/pkg/stream"
	log "github.com/sirupsen/logrus"
)

// ChatHandler hands out credentials for the hosted chat and video service.
type ChatHandler struct {
	Tokens *stream.TokenProvider
}

func NewChatHandler(tokens *stream.TokenProvider) *ChatHandler {
	return &ChatHandler{Tokens: tokens}
}

type chatTokenResponse struct {
	Token  string `json:"token"`
	APIKey string `json:"apiKey"`
}

// GetStreamTokenHandler handles GET /chat/token.
func (h *ChatHandler) GetStreamTokenHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	token, err := h.Tokens.CreateToken(userID.Hex())
	if errors.Is(err, stream.ErrNotConfigured) {
		log.Warn("Chat token requested but stream credentials are not configured")
		respondMessage(w, http.StatusServiceUnavailable, "Chat is not configured")
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to create stream token")
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	respondJSON(w, http.StatusOK, chatTokenResponse{Token: token, APIKey: h.Tokens.APIKey()})
}
