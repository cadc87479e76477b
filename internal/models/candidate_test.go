package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCandidateQueryMatches(t *testing.T) {
	u := &User{
		ID:               primitive.NewObjectID(),
		FullName:         "Daniela Ruiz",
		Email:            "dani@example.com",
		NativeLanguage:   Spanish,
		LearningLanguage: English,
		IsOnboarded:      true,
	}
	newcomer := &User{ID: primitive.NewObjectID(), FullName: "Dan"}

	tests := []struct {
		name string
		q    CandidateQuery
		user *User
		want bool
	}{
		{"empty query", CandidateQuery{}, u, true},
		{"excluded", CandidateQuery{Exclude: []primitive.ObjectID{u.ID}}, u, false},
		{"onboarded only", CandidateQuery{OnboardedOnly: true}, newcomer, false},
		{"native matches", CandidateQuery{NativeLanguage: Spanish}, u, true},
		{"native differs", CandidateQuery{NativeLanguage: English}, u, false},
		{"learning matches", CandidateQuery{LearningLanguage: English}, u, true},
		{"learning differs", CandidateQuery{LearningLanguage: Spanish}, u, false},
		{"search name case-insensitive", CandidateQuery{Search: "RUIZ"}, u, true},
		{"search email", CandidateQuery{Search: "dani@"}, u, true},
		{"search miss", CandidateQuery{Search: "bob"}, u, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.Matches(tt.user))
		})
	}
}
