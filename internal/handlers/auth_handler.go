package handlers

import (
	"net/http"
	"time"

	"github.com/Dias221467/LangBridge/internal/config"
	"github.com/Dias221467/LangBridge/internal/models"
	"github.com/Dias221467/LangBridge/internal/services"
	jwtutil "github.com/Dias221467/LangBridge/pkg/jwt"
	"github.com/Dias221467/LangBridge/pkg/middleware"
	log "github.com/sirupsen/logrus"
)

// AuthHandler handles account and session endpoints.
type AuthHandler struct {
	Service   *services.UserService
	Config    *config.Config
	Blacklist jwtutil.Blacklist
}

// NewAuthHandler creates a new instance of AuthHandler. blacklist may be nil, in which
// case logout only clears the cookie.
func NewAuthHandler(service *services.UserService, cfg *config.Config, blacklist jwtutil.Blacklist) *AuthHandler {
	return &AuthHandler{
		Service:   service,
		Config:    cfg,
		Blacklist: blacklist,
	}
}

type sessionResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
	Token   string       `json:"token,omitempty"`
}

// SignupHandler registers a user and starts a session.
func (h *AuthHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.Service.RegisterUser(r.Context(), services.SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	token, ok := h.startSession(w, user)
	if !ok {
		return
	}
	respondJSON(w, http.StatusCreated, sessionResponse{Success: true, User: user, Token: token})
}

// LoginHandler authenticates with email and password.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.Service.AuthenticateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	token, ok := h.startSession(w, user)
	if !ok {
		return
	}
	log.WithField("userID", user.ID.Hex()).Info("User logged in successfully")
	respondJSON(w, http.StatusOK, sessionResponse{Success: true, User: user, Token: token})
}

// LogoutHandler revokes the current token and clears the session cookie.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims != nil && h.Blacklist != nil && claims.ID != "" && claims.ExpiresAt != nil {
		if err := h.Blacklist.Add(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			log.WithError(err).Error("Failed to revoke token")
			respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.Config.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Logout successful"})
}

// OnboardingHandler completes the caller's language profile.
func (h *AuthHandler) OnboardingHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req onboardingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.Service.CompleteOnboarding(r.Context(), userID, services.OnboardingInput{
		FullName:         req.FullName,
		Bio:              req.Bio,
		NativeLanguage:   req.NativeLanguage,
		LearningLanguage: req.LearningLanguage,
		Location:         req.Location,
		ProfilePic:       req.ProfilePic,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.WithField("userID", userID.Hex()).Info("User onboarded")
	respondJSON(w, http.StatusOK, sessionResponse{Success: true, User: user})
}

// UpdateLearningLanguageHandler changes the language the caller is learning.
func (h *AuthHandler) UpdateLearningLanguageHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req learningLanguageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.Service.UpdateLearningLanguage(r.Context(), userID, req.LearningLanguage)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{Success: true, User: user})
}

// MeHandler returns the authenticated user.
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{Success: true, User: user})
}

func (h *AuthHandler) startSession(w http.ResponseWriter, user *models.User) (string, bool) {
	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return "", false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Config.TokenExpiry.Seconds()),
		HttpOnly: true,
		Secure:   h.Config.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
	return token, true
}
