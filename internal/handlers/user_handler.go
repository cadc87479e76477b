package handlers

import (
	"net/http"

	"github.com/Dias221467/LangBridge/internal/services"
)

// UserHandler serves the partner discovery lists.
type UserHandler struct {
	Service *services.MatchService
}

func NewUserHandler(service *services.MatchService) *UserHandler {
	return &UserHandler{Service: service}
}

// CandidatesHandler returns a handler for one matching mode.
func (h *UserHandler) CandidatesHandler(mode services.MatchMode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		candidates, err := h.Service.FindCandidates(r.Context(), userID, mode, "")
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, candidates)
	}
}

// SearchUsersHandler handles GET /users/search?q=.
func (h *UserHandler) SearchUsersHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	users, err := h.Service.FindCandidates(r.Context(), userID, services.ModeSearch, r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}
