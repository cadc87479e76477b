package middleware

import (
	"context"
	"net/http"

	"github.com/Dias221467/LangBridge/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityRecorder stores the time of a user's latest request.
type ActivityRecorder interface {
	UpdateLastActive(ctx context.Context, id primitive.ObjectID) error
}

// UpdateLastActiveMiddleware must run after AuthMiddleware.
func UpdateLastActiveMiddleware(recorder ActivityRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := UserIDFromContext(r.Context()); ok {
				if err := recorder.UpdateLastActive(r.Context(), userID); err != nil {
					logger.Log.WithError(err).Debug("Failed to update last active")
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
