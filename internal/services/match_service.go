package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Dias221467/LangBridge/internal/models"
	"github.com/Dias221467/LangBridge/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MatchMode selects which candidate list FindCandidates computes.
type MatchMode string

const (
	ModeRecommended      MatchMode = "recommended"
	ModeCoLearners       MatchMode = "co-learners"
	ModeNativeSpeakers   MatchMode = "native-speakers"
	ModeLanguageTeachers MatchMode = "language-teachers"
	ModeSearch           MatchMode = "search"
)

// MatchService computes partner candidate lists for a user.
type MatchService struct {
	userRepo   UserStore
	friendRepo FriendRequestStore
}

func NewMatchService(userRepo UserStore, friendRepo FriendRequestStore) *MatchService {
	return &MatchService{userRepo: userRepo, friendRepo: friendRepo}
}

// FindCandidates returns candidates for userID. query is only used by ModeSearch.
//
// Every mode except search excludes the user, their friends and anyone with a pending
// request to or from them. Search is for global discovery and only excludes the user.
func (s *MatchService) FindCandidates(ctx context.Context, userID primitive.ObjectID, mode MatchMode, query string) ([]models.PublicUser, error) {
	if mode == ModeSearch {
		query = strings.TrimSpace(query)
		if query == "" {
			return nil, ErrEmptyQuery
		}
		return s.run(ctx, models.CandidateQuery{
			Exclude:       []primitive.ObjectID{userID},
			OnboardedOnly: true,
			Search:        query,
		})
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storageError("load user", err)
	}

	q := models.CandidateQuery{OnboardedOnly: true}
	switch mode {
	case ModeRecommended:
	case ModeCoLearners:
		if user.LearningLanguage == "" {
			return nil, ErrNoLearningLanguage
		}
		q.LearningLanguage = user.LearningLanguage
	case ModeNativeSpeakers:
		if user.NativeLanguage == "" {
			return nil, ErrNoNativeLanguage
		}
		q.NativeLanguage = user.NativeLanguage
	case ModeLanguageTeachers:
		if user.LearningLanguage == "" {
			return nil, ErrNoLearningLanguage
		}
		q.NativeLanguage = user.LearningLanguage
	default:
		return nil, ErrUnknownMode
	}

	pending, err := s.friendRepo.PendingCounterparts(ctx, userID)
	if err != nil {
		return nil, storageError("load pending requests", err)
	}
	q.Exclude = exclusionSet(userID, user.Friends, pending)

	return s.run(ctx, q)
}

func (s *MatchService) run(ctx context.Context, q models.CandidateQuery) ([]models.PublicUser, error) {
	users, err := s.userRepo.FindCandidates(ctx, q)
	if err != nil {
		return nil, storageError("find candidates", err)
	}

	candidates := make([]models.PublicUser, 0, len(users))
	for i := range users {
		candidates = append(candidates, users[i].Candidate())
	}

	logrus.WithFields(logrus.Fields{
		"excluded": len(q.Exclude),
		"results":  len(candidates),
	}).Debug("Candidates computed")
	return candidates, nil
}

// exclusionSet is {self} ∪ friends ∪ pending, without duplicates.
func exclusionSet(self primitive.ObjectID, friends, pending []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, 1+len(friends)+len(pending))
	out := make([]primitive.ObjectID, 0, 1+len(friends)+len(pending))
	add := func(id primitive.ObjectID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	add(self)
	for _, id := range friends {
		add(id)
	}
	for _, id := range pending {
		add(id)
	}
	return out
}
