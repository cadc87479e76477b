package services

import (
	"context"
	"testing"

	"github.com/Dias221467/LangBridge/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var allModes = []MatchMode{ModeRecommended, ModeCoLearners, ModeNativeSpeakers, ModeLanguageTeachers}

func TestFindCandidates_LanguagePredicates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	me := env.addUser(t, "Me", "me@example.com", models.English, models.Spanish)
	coLearner := env.addUser(t, "Co Learner", "co@example.com", models.French, models.Spanish)
	nativeSpeaker := env.addUser(t, "Native", "native@example.com", models.English, models.German)
	teacher := env.addUser(t, "Teacher", "teacher@example.com", models.Spanish, models.French)
	newcomer := env.addNewcomer(t, "Newcomer", "new@example.com")

	tests := []struct {
		mode MatchMode
		want []primitive.ObjectID
	}{
		{ModeRecommended, []primitive.ObjectID{coLearner, nativeSpeaker, teacher}},
		{ModeCoLearners, []primitive.ObjectID{coLearner}},
		{ModeNativeSpeakers, []primitive.ObjectID{nativeSpeaker}},
		{ModeLanguageTeachers, []primitive.ObjectID{teacher}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got, err := env.matches.FindCandidates(ctx, me, tt.mode, "")
			require.NoError(t, err)
			ids := candidateIDs(got)
			assert.ElementsMatch(t, tt.want, ids)
			assert.NotContains(t, ids, newcomer)
		})
	}
}

func TestFindCandidates_SelfExcludedInEveryMode(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	me := env.addUser(t, "Me Myself", "me@example.com", models.Spanish, models.Spanish)

	for _, mode := range allModes {
		got, err := env.matches.FindCandidates(ctx, me, mode, "")
		require.NoError(t, err)
		assert.NotContains(t, candidateIDs(got), me, mode)
	}

	got, err := env.matches.FindCandidates(ctx, me, ModeSearch, "me")
	require.NoError(t, err)
	assert.NotContains(t, candidateIDs(got), me)
}

func TestFindCandidates_FriendsAndPendingExcluded(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	me := env.addUser(t, "Me", "me@example.com", models.English, models.Spanish)
	friend := env.addUser(t, "Friend", "friend@example.com", models.Spanish, models.Spanish)
	sentTo := env.addUser(t, "Sent To", "sent@example.com", models.Spanish, models.Spanish)
	receivedFrom := env.addUser(t, "Received From", "received@example.com", models.Spanish, models.Spanish)
	stranger := env.addUser(t, "Stranger", "stranger@example.com", models.Spanish, models.Spanish)

	env.befriend(t, me, friend)
	_, err := env.friends.SendFriendRequest(ctx, me, sentTo)
	require.NoError(t, err)
	_, err = env.friends.SendFriendRequest(ctx, receivedFrom, me)
	require.NoError(t, err)

	for _, mode := range []MatchMode{ModeRecommended, ModeCoLearners, ModeLanguageTeachers} {
		got, err := env.matches.FindCandidates(ctx, me, mode, "")
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{stranger}, candidateIDs(got), mode)
	}
}

func TestFindCandidates_RecommendedExcludesFriend(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	a := env.addUser(t, "A", "a@example.com", models.English, models.Spanish)
	b := env.addUser(t, "B", "b@example.com", models.Spanish, models.English)
	env.befriend(t, a, b)

	got, err := env.matches.FindCandidates(ctx, a, ModeRecommended, "")
	require.NoError(t, err)
	assert.NotContains(t, candidateIDs(got), b)
}

func TestFindCandidates_CoLearnersCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	users := NewUserService(env.store)
	users.cost = bcrypt.MinCost

	a, err := users.RegisterUser(ctx, SignupInput{FullName: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)
	b, err := users.RegisterUser(ctx, SignupInput{FullName: "B", Email: "b@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = users.CompleteOnboarding(ctx, a.ID, OnboardingInput{
		FullName: "A", Bio: "hola", NativeLanguage: "English", LearningLanguage: "Spanish", Location: "Austin",
	})
	require.NoError(t, err)
	_, err = users.CompleteOnboarding(ctx, b.ID, OnboardingInput{
		FullName: "B", Bio: "hi", NativeLanguage: "french", LearningLanguage: "spanish", Location: "Lyon",
	})
	require.NoError(t, err)

	got, err := env.matches.FindCandidates(ctx, a.ID, ModeCoLearners, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, "hi", got[0].Bio)
	assert.Equal(t, "Lyon", got[0].Location)
}

func TestFindCandidates_MissingProfileField(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	newcomer := env.addNewcomer(t, "Newcomer", "new@example.com")

	_, err := env.matches.FindCandidates(ctx, newcomer, ModeCoLearners, "")
	assert.ErrorIs(t, err, ErrNoLearningLanguage)

	_, err = env.matches.FindCandidates(ctx, newcomer, ModeLanguageTeachers, "")
	assert.ErrorIs(t, err, ErrNoLearningLanguage)

	_, err = env.matches.FindCandidates(ctx, newcomer, ModeNativeSpeakers, "")
	assert.ErrorIs(t, err, ErrNoNativeLanguage)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = env.matches.FindCandidates(ctx, newcomer, ModeRecommended, "")
	assert.NoError(t, err)
}

func TestFindCandidates_Search(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	me := env.addUser(t, "Ann Searcher", "searcher@example.com", models.English, models.Spanish)
	friend := env.addUser(t, "Daniel", "daniel@example.com", models.Spanish, models.English)
	pending := env.addUser(t, "Joanna", "jo@example.com", models.Spanish, models.English)
	byEmail := env.addUser(t, "Kim", "kim@ANdorra.example", models.Korean, models.English)
	miss := env.addUser(t, "Bob", "bob@example.com", models.German, models.English)
	hidden := env.addNewcomer(t, "Annabel", "annabel@example.com")

	env.befriend(t, me, friend)
	_, err := env.friends.SendFriendRequest(ctx, me, pending)
	require.NoError(t, err)

	got, err := env.matches.FindCandidates(ctx, me, ModeSearch, "an")
	require.NoError(t, err)
	ids := candidateIDs(got)
	assert.ElementsMatch(t, []primitive.ObjectID{friend, pending, byEmail}, ids)
	assert.NotContains(t, ids, me)
	assert.NotContains(t, ids, miss)
	assert.NotContains(t, ids, hidden)
}

func TestFindCandidates_SearchQueryIsLiteral(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	me := env.addUser(t, "Me", "me@example.com", models.English, models.Spanish)
	env.addUser(t, "Plain", "plain@example.com", models.Spanish, models.English)
	dotted := env.addUser(t, "J.R. Smith", "jr@example.com", models.Spanish, models.English)

	got, err := env.matches.FindCandidates(ctx, me, ModeSearch, "j.r.")
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{dotted}, candidateIDs(got))
}

func TestFindCandidates_InvalidInput(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	me := env.addUser(t, "Me", "me@example.com", models.English, models.Spanish)

	_, err := env.matches.FindCandidates(ctx, me, ModeSearch, "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = env.matches.FindCandidates(ctx, me, MatchMode("everyone"), "")
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = env.matches.FindCandidates(ctx, primitive.NewObjectID(), ModeRecommended, "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExclusionSet(t *testing.T) {
	self := primitive.NewObjectID()
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	got := exclusionSet(self, []primitive.ObjectID{a, self}, []primitive.ObjectID{b, a})
	assert.Equal(t, []primitive.ObjectID{self, a, b}, got)
}
