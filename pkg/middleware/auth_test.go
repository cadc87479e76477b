package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtutil "github.com/Dias221467/LangBridge/pkg/jwt"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "middleware-secret"

func protectedRouter(t *testing.T) *mux.Router {
	t.Helper()
	r := mux.NewRouter()
	r.Use(AuthMiddleware(testSecret, nil))
	r.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		w.Write([]byte(id.Hex()))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	userID := primitive.NewObjectID()
	token, err := jwtutil.GenerateToken(userID.Hex(), "a@example.com", testSecret, time.Hour)
	require.NoError(t, err)
	router := protectedRouter(t)

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID.Hex(), rec.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Unauthorized - No token provided"}`, rec.Body.String())
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Unauthorized - Invalid token"}`, rec.Body.String())
	})

	t.Run("non object id subject", func(t *testing.T) {
		other, err := jwtutil.GenerateToken("not-an-id", "a@example.com", testSecret, time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+other)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

type recorderFunc func(ctx context.Context, id primitive.ObjectID) error

func (f recorderFunc) UpdateLastActive(ctx context.Context, id primitive.ObjectID) error {
	return f(ctx, id)
}

func TestUpdateLastActiveMiddleware(t *testing.T) {
	userID := primitive.NewObjectID()
	var seen []primitive.ObjectID
	mw := UpdateLastActiveMiddleware(recorderFunc(func(ctx context.Context, id primitive.ObjectID) error {
		seen = append(seen, id)
		return nil
	}))
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Empty(t, seen, "anonymous requests are not recorded")

	ctx := WithClaims(req.Context(), &jwtutil.Claims{UserID: userID.Hex()})
	h.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))
	assert.Equal(t, []primitive.ObjectID{userID}, seen)
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}
