package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in LangBridge.
type User struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FullName         string               `bson:"full_name" json:"fullName"`
	Email            string               `bson:"email" json:"email"`
	HashedPassword   string               `bson:"password" json:"-"`
	Bio              string               `bson:"bio" json:"bio"`
	Location         string               `bson:"location" json:"location"`
	ProfilePic       string               `bson:"profile_pic" json:"profilePic"`
	AvatarConfig     AvatarConfig         `bson:"avatar_config,omitempty" json:"avatarConfig,omitempty"`
	NativeLanguage   Language             `bson:"native_language" json:"nativeLanguage"`
	LearningLanguage Language             `bson:"learning_language" json:"learningLanguage"`
	IsOnboarded      bool                 `bson:"is_onboarded" json:"isOnboarded"`
	Friends          []primitive.ObjectID `bson:"friends" json:"friends"`
	CreatedAt        time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updated_at" json:"updatedAt"`
	LastActiveAt     time.Time            `bson:"last_active_at,omitempty" json:"lastActiveAt,omitempty"`
}

// AvatarConfig holds the avataaars rendering parameters for a user.
type AvatarConfig map[string]string

// HasFriend reports whether id is in the user's friend set.
func (u *User) HasFriend(id primitive.ObjectID) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

// PublicUser is the subset of a user that other users may see.
type PublicUser struct {
	ID               primitive.ObjectID `json:"id"`
	FullName         string             `json:"fullName"`
	Email            string             `json:"email"`
	ProfilePic       string             `json:"profilePic"`
	AvatarConfig     AvatarConfig       `json:"avatarConfig,omitempty"`
	NativeLanguage   Language           `json:"nativeLanguage,omitempty"`
	LearningLanguage Language           `json:"learningLanguage,omitempty"`
	Bio              string             `json:"bio,omitempty"`
	Location         string             `json:"location,omitempty"`
}

// Public projects the user for friend and request listings.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:               u.ID,
		FullName:         u.FullName,
		Email:            u.Email,
		ProfilePic:       u.ProfilePic,
		AvatarConfig:     u.AvatarConfig,
		NativeLanguage:   u.NativeLanguage,
		LearningLanguage: u.LearningLanguage,
	}
}

// Candidate projects the user for matching results, which also show bio and location.
func (u *User) Candidate() PublicUser {
	p := u.Public()
	p.Bio = u.Bio
	p.Location = u.Location
	return p
}

// ProfileUpdate lists the profile fields to change; nil fields are left untouched.
type ProfileUpdate struct {
	FullName         *string
	Bio              *string
	Location         *string
	ProfilePic       *string
	NativeLanguage   *Language
	LearningLanguage *Language
	IsOnboarded      *bool
}

// Apply copies the set fields onto u.
func (p ProfileUpdate) Apply(u *User) {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.ProfilePic != nil {
		u.ProfilePic = *p.ProfilePic
	}
	if p.NativeLanguage != nil {
		u.NativeLanguage = *p.NativeLanguage
	}
	if p.LearningLanguage != nil {
		u.LearningLanguage = *p.LearningLanguage
	}
	if p.IsOnboarded != nil {
		u.IsOnboarded = *p.IsOnboarded
	}
}
