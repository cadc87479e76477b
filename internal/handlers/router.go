package handlers

import (
	"net/http"

	"github.com/Dias221467/LangBridge/internal/services"
	jwtutil "github.com/Dias221467/LangBridge/pkg/jwt"
	"github.com/Dias221467/LangBridge/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router groups the handlers and the session settings needed to mount them.
type Router struct {
	Auth          *AuthHandler
	Friends       *FriendHandler
	Users         *UserHandler
	Chat          *ChatHandler
	Notifications *NotificationHandler
	Health        *HealthHandler
	Activity      middleware.ActivityRecorder
	JWTSecret     string
	Blacklist     jwtutil.Blacklist
}

// Build registers every route on a new mux.Router.
func (rt *Router) Build() *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.MetricsMiddleware)

	router.HandleFunc("/healthz", rt.Health.HealthHandler).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// Public auth routes
	api.HandleFunc("/auth/signup", rt.Auth.SignupHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", rt.Auth.LoginHandler).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(rt.JWTSecret, rt.Blacklist))
	if rt.Activity != nil {
		protected.Use(middleware.UpdateLastActiveMiddleware(rt.Activity))
	}

	protected.HandleFunc("/auth/logout", rt.Auth.LogoutHandler).Methods(http.MethodPost)
	protected.HandleFunc("/auth/onboarding", rt.Auth.OnboardingHandler).Methods(http.MethodPost)
	protected.HandleFunc("/auth/update-learning-language", rt.Auth.UpdateLearningLanguageHandler).Methods(http.MethodPut)
	protected.HandleFunc("/auth/me", rt.Auth.MeHandler).Methods(http.MethodGet)

	// Friend routes
	protected.HandleFunc("/users/friends", rt.Friends.GetFriendsHandler).Methods(http.MethodGet)
	protected.HandleFunc("/users/friend-request/{id}", rt.Friends.SendFriendRequestHandler).Methods(http.MethodPost)
	protected.HandleFunc("/users/friend-request/{id}/accept", rt.Friends.AcceptFriendRequestHandler).Methods(http.MethodPut)
	protected.HandleFunc("/users/friend-requests", rt.Friends.GetFriendRequestsHandler).Methods(http.MethodGet)
	protected.HandleFunc("/users/outgoing-friend-requests", rt.Friends.GetOutgoingRequestsHandler).Methods(http.MethodGet)

	// Matching routes
	protected.HandleFunc("/users/recommended", rt.Users.CandidatesHandler(services.ModeRecommended)).Methods(http.MethodGet)
	protected.HandleFunc("/users/co-learners", rt.Users.CandidatesHandler(services.ModeCoLearners)).Methods(http.MethodGet)
	protected.HandleFunc("/users/native-speakers", rt.Users.CandidatesHandler(services.ModeNativeSpeakers)).Methods(http.MethodGet)
	protected.HandleFunc("/users/language-teachers", rt.Users.CandidatesHandler(services.ModeLanguageTeachers)).Methods(http.MethodGet)
	protected.HandleFunc("/users/search", rt.Users.SearchUsersHandler).Methods(http.MethodGet)

	protected.HandleFunc("/chat/token", rt.Chat.GetStreamTokenHandler).Methods(http.MethodGet)

	// Notification routes
	protected.HandleFunc("/notifications", rt.Notifications.GetUserNotificationsHandler).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id}/read", rt.Notifications.MarkAsReadHandler).Methods(http.MethodPost)
	protected.HandleFunc("/notifications/{id}", rt.Notifications.DeleteNotificationHandler).Methods(http.MethodDelete)

	return router
}
