package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CandidateQuery describes which users a matching query may return.
// Zero-valued language fields and an empty Search apply no constraint.
type CandidateQuery struct {
	Exclude          []primitive.ObjectID
	OnboardedOnly    bool
	NativeLanguage   Language
	LearningLanguage Language
	Search           string
}

// Matches evaluates the query against a single user.
func (q CandidateQuery) Matches(u *User) bool {
	for _, id := range q.Exclude {
		if id == u.ID {
			return false
		}
	}
	if q.OnboardedOnly && !u.IsOnboarded {
		return false
	}
	if q.NativeLanguage != "" && u.NativeLanguage != q.NativeLanguage {
		return false
	}
	if q.LearningLanguage != "" && u.LearningLanguage != q.LearningLanguage {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(u.FullName), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			return false
		}
	}
	return true
}
