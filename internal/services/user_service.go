package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Dias221467/LangBridge/internal/models"
	"github.com/Dias221467/LangBridge/internal/repository"
	"github.com/Dias221467/LangBridge/pkg/avatar"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService encapsulates the business logic for accounts and profiles.
type UserService struct {
	repo UserStore
	cost int
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore) *UserService {
	return &UserService{
		repo: repo,
		cost: bcrypt.DefaultCost,
	}
}

// SignupInput is the data collected on the signup form.
type SignupInput struct {
	FullName string
	Email    string
	Password string
}

// OnboardingInput is the profile completed after signup.
type OnboardingInput struct {
	FullName         string
	Bio              string
	NativeLanguage   string
	LearningLanguage string
	Location         string
	ProfilePic       string
}

// RegisterUser creates an account with a hashed password and a deterministic avatar.
func (s *UserService) RegisterUser(ctx context.Context, in SignupInput) (*models.User, error) {
	email := normalizeEmail(in.Email)

	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		logrus.WithField("email", email).Warn("Email already in use")
		return nil, ErrEmailInUse
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, storageError("check email", err)
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, storageError("hash password", err)
	}

	cfg := avatar.Deterministic(email)
	user := &models.User{
		FullName:       strings.TrimSpace(in.FullName),
		Email:          email,
		HashedPassword: string(hashedPwd),
		AvatarConfig:   cfg,
		ProfilePic:     avatar.URL(cfg),
		Friends:        []primitive.ObjectID{},
	}

	created, err := s.repo.CreateUser(ctx, user)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailInUse
	}
	if err != nil {
		return nil, storageError("create user", err)
	}

	logrus.WithField("userID", created.ID.Hex()).Info("User registered successfully")
	return created, nil
}

// AuthenticateUser verifies the email and password and returns the user if credentials are valid.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storageError("load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("userID", user.ID.Hex()).Warn("Invalid credentials")
		return nil, ErrInvalidCredentials
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storageError("load user", err)
	}
	return user, nil
}

// CompleteOnboarding stores the profile and marks the user as onboarded, which makes
// them visible to matching queries.
func (s *UserService) CompleteOnboarding(ctx context.Context, id primitive.ObjectID, in OnboardingInput) (*models.User, error) {
	native, err := models.ParseLanguage(in.NativeLanguage)
	if err != nil {
		return nil, ErrUnsupportedLanguage
	}
	learning, err := models.ParseLanguage(in.LearningLanguage)
	if err != nil {
		return nil, ErrUnsupportedLanguage
	}

	fullName := strings.TrimSpace(in.FullName)
	bio := strings.TrimSpace(in.Bio)
	location := strings.TrimSpace(in.Location)
	onboarded := true
	upd := models.ProfileUpdate{
		FullName:         &fullName,
		Bio:              &bio,
		Location:         &location,
		NativeLanguage:   &native,
		LearningLanguage: &learning,
		IsOnboarded:      &onboarded,
	}
	if pic := strings.TrimSpace(in.ProfilePic); pic != "" {
		upd.ProfilePic = &pic
	}

	return s.update(ctx, id, upd)
}

// UpdateLearningLanguage changes only the language the user is learning.
func (s *UserService) UpdateLearningLanguage(ctx context.Context, id primitive.ObjectID, language string) (*models.User, error) {
	learning, err := models.ParseLanguage(language)
	if err != nil {
		return nil, ErrUnsupportedLanguage
	}
	return s.update(ctx, id, models.ProfileUpdate{LearningLanguage: &learning})
}

func (s *UserService) update(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error) {
	user, err := s.repo.UpdateProfile(ctx, id, upd)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storageError("update user", err)
	}
	return user, nil
}

// UpdateLastActive records activity for the user.
func (s *UserService) UpdateLastActive(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.TouchLastActive(ctx, id); err != nil {
		return storageError("touch last active", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
