package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dias221467/LangBridge/internal/services"
	"github.com/Dias221467/LangBridge/pkg/middleware"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Warn("Failed to encode response")
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, messageResponse{Message: message})
}

// respondError maps a service error to its HTTP status. Storage failures are
// logged in full and reported with a generic message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	kind := services.KindOf(err)
	status := statusForKind(kind)

	if kind == services.KindStorage {
		log.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("Request failed")
		respondMessage(w, status, "Internal Server Error")
		return
	}

	message := err.Error()
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}
	respondMessage(w, status, message)
}

func statusForKind(kind services.Kind) int {
	switch kind {
	case services.KindValidation, services.KindConflict:
		return http.StatusBadRequest
	case services.KindUnauthenticated:
		return http.StatusUnauthorized
	case services.KindAuthorization:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// currentUserID reads the authenticated user from the request; it writes a 401 and
// returns false when the route is missing AuthMiddleware.
func currentUserID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return primitive.NilObjectID, false
	}
	return id, true
}

// pathObjectID parses the {name} route variable as an ObjectID, answering 400 otherwise.
func pathObjectID(w http.ResponseWriter, r *http.Request, name, label string) (primitive.ObjectID, bool) {
	raw := mux.Vars(r)[name]
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		log.WithField(name, raw).Warn("Malformed id in path")
		respondMessage(w, http.StatusBadRequest, "Invalid "+label)
		return primitive.NilObjectID, false
	}
	return id, true
}
