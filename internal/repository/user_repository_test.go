package repository

import (
	"testing"

	"github.com/Dias221467/LangBridge/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCandidateFilter_Empty(t *testing.T) {
	assert.Equal(t, bson.M{}, candidateFilter(models.CandidateQuery{}))
}

func TestCandidateFilter_LanguageMode(t *testing.T) {
	self := primitive.NewObjectID()
	friend := primitive.NewObjectID()

	got := candidateFilter(models.CandidateQuery{
		Exclude:          []primitive.ObjectID{self, friend},
		OnboardedOnly:    true,
		LearningLanguage: models.Spanish,
	})

	assert.Equal(t, bson.M{"$and": []bson.M{
		{"_id": bson.M{"$nin": []primitive.ObjectID{self, friend}}},
		{"is_onboarded": true},
		{"learning_language": models.Spanish},
	}}, got)
}

func TestCandidateFilter_SearchIsEscaped(t *testing.T) {
	got := candidateFilter(models.CandidateQuery{Search: "a.b*"})

	and, ok := got["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, and, 1)

	or, ok := and[0]["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)

	pattern, ok := or[0]["full_name"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, `a\.b\*`, pattern.Pattern)
	assert.Equal(t, "i", pattern.Options)
	assert.Equal(t, pattern, or[1]["email"])
}

func TestProfileFields(t *testing.T) {
	bio := "hello"
	onboarded := true
	fields := profileFields(models.ProfileUpdate{Bio: &bio, IsOnboarded: &onboarded})

	assert.Equal(t, "hello", fields["bio"])
	assert.Equal(t, true, fields["is_onboarded"])
	assert.NotContains(t, fields, "full_name")
}
