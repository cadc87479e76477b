package services

import (
	"errors"
	"fmt"
)

// Kind classifies an Error for the transport layer.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthenticated
	KindAuthorization
	KindNotFound
	KindConflict
	KindStorage
)

// Error is a classified service failure. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels by identity of kind and message, so wrapped copies still compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

var (
	ErrSelfRequest          = &Error{Kind: KindValidation, Message: "You can't send friend request to yourself"}
	ErrRecipientNotFound    = &Error{Kind: KindNotFound, Message: "Recipient not found"}
	ErrAlreadyFriends       = &Error{Kind: KindConflict, Message: "You are already friends with this user"}
	ErrRequestAlreadyExists = &Error{Kind: KindConflict, Message: "A friend request already exists between you and this user"}
	ErrRequestNotFound      = &Error{Kind: KindNotFound, Message: "Friend request not found"}
	ErrForbidden            = &Error{Kind: KindAuthorization, Message: "You are not authorized to accept this request"}
	ErrUserNotFound         = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrNoLearningLanguage   = &Error{Kind: KindValidation, Message: "User has not set a learning language"}
	ErrNoNativeLanguage     = &Error{Kind: KindValidation, Message: "User has not set a native language"}
	ErrEmptyQuery           = &Error{Kind: KindValidation, Message: "Search query is required"}
	ErrUnknownMode          = &Error{Kind: KindValidation, Message: "Unknown matching mode"}
	ErrUnsupportedLanguage  = &Error{Kind: KindValidation, Message: "Unsupported language"}
	ErrEmailInUse           = &Error{Kind: KindConflict, Message: "Email already exists, please use a different one"}
	ErrInvalidCredentials   = &Error{Kind: KindUnauthenticated, Message: "Invalid email or password"}
	ErrNotificationNotFound = &Error{Kind: KindNotFound, Message: "Notification not found"}
)

// storageError hides err behind a generic message; the cause stays reachable via errors.Unwrap.
func storageError(op string, err error) error {
	return &Error{Kind: KindStorage, Message: "Internal Server Error", Err: fmt.Errorf("%s: %w", op, err)}
}

// KindOf returns the kind of err, or KindStorage for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}
