// Package memstore is an in-process implementation of the repositories for local runs
// without MongoDB and for tests. Data is lost on restart.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Dias221467/LangBridge/internal/models"
	"github.com/Dias221467/LangBridge/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu            sync.RWMutex
	txMu          sync.Mutex
	users         map[primitive.ObjectID]*models.User
	requests      map[primitive.ObjectID]*models.FriendRequest
	notifications map[primitive.ObjectID]*models.Notification
	seq           int64
}

func New() *Store {
	return &Store{
		users:         make(map[primitive.ObjectID]*models.User),
		requests:      make(map[primitive.ObjectID]*models.FriendRequest),
		notifications: make(map[primitive.ObjectID]*models.Notification),
	}
}

// WithTransaction serialises units of work against each other. Writes are not rolled back
// on error, so callers keep their steps idempotent as with database.SequentialTransactor.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx)
}

// stamp returns increasing timestamps so creation order is stable in tests.
func (s *Store) stamp() time.Time {
	s.seq++
	return time.Now().Add(time.Duration(s.seq) * time.Microsecond)
}

func copyUser(u *models.User) models.User {
	c := *u
	c.Friends = append([]primitive.ObjectID(nil), u.Friends...)
	if u.AvatarConfig != nil {
		c.AvatarConfig = make(models.AvatarConfig, len(u.AvatarConfig))
		for k, v := range u.AvatarConfig {
			c.AvatarConfig[k] = v
		}
	}
	return c
}

// ---- users ----

func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, repository.ErrDuplicate
		}
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := s.stamp()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Friends == nil {
		user.Friends = []primitive.ObjectID{}
	}
	c := copyUser(user)
	s.users[user.ID] = &c
	return user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := copyUser(u)
	return &c, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			c := copyUser(u)
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.User{}
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, copyUser(u))
		}
	}
	return out, nil
}

func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	upd.Apply(u)
	u.UpdatedAt = s.stamp()
	c := copyUser(u)
	return &c, nil
}

func (s *Store) TouchLastActive(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[id]; ok {
		u.LastActiveAt = time.Now()
	}
	return nil
}

func (s *Store) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	if !u.HasFriend(friendID) {
		u.Friends = append(u.Friends, friendID)
	}
	return nil
}

// FindCandidates returns matches in creation order.
func (s *Store) FindCandidates(ctx context.Context, q models.CandidateQuery) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.User{}
	for _, u := range s.users {
		if q.Matches(u) {
			out = append(out, copyUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ---- friend requests ----

func (s *Store) CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.PairKey(req.SenderID, req.RecipientID)
	for _, r := range s.requests {
		if r.PairKey == key {
			return nil, repository.ErrDuplicate
		}
	}

	req.ID = primitive.NewObjectID()
	now := s.stamp()
	req.CreatedAt = now
	req.UpdatedAt = now
	req.Status = models.StatusPending
	req.PairKey = key
	c := *req
	s.requests[req.ID] = &c
	return req, nil
}

func (s *Store) GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *r
	return &c, nil
}

func (s *Store) FindRequestBetween(ctx context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := models.PairKey(a, b)
	for _, r := range s.requests {
		if r.PairKey == key {
			c := *r
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) MarkAccepted(ctx context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok || r.Status != models.StatusPending {
		return false, nil
	}
	r.Status = models.StatusAccepted
	r.UpdatedAt = s.stamp()
	return true, nil
}

func (s *Store) ListByRecipient(ctx context.Context, recipientID primitive.ObjectID, status models.RequestStatus) ([]models.FriendRequest, error) {
	return s.listRequests(func(r *models.FriendRequest) bool {
		return r.RecipientID == recipientID && r.Status == status
	}), nil
}

func (s *Store) ListBySender(ctx context.Context, senderID primitive.ObjectID, status models.RequestStatus) ([]models.FriendRequest, error) {
	return s.listRequests(func(r *models.FriendRequest) bool {
		return r.SenderID == senderID && r.Status == status
	}), nil
}

func (s *Store) PendingCounterparts(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	requests := s.listRequests(func(r *models.FriendRequest) bool {
		return r.Status == models.StatusPending && (r.SenderID == userID || r.RecipientID == userID)
	})
	ids := make([]primitive.ObjectID, 0, len(requests))
	for i := range requests {
		ids = append(ids, requests[i].Counterpart(userID))
	}
	return ids, nil
}

// listRequests returns matching requests newest first.
func (s *Store) listRequests(match func(*models.FriendRequest) bool) []models.FriendRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.FriendRequest{}
	for _, r := range s.requests {
		if match(r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// ---- notifications ----

func (s *Store) CreateNotification(ctx context.Context, notif *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notif.ID = primitive.NewObjectID()
	c := *notif
	s.notifications[notif.ID] = &c
	return nil
}

func (s *Store) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	out := []models.Notification{}
	for _, n := range s.notifications {
		if n.UserID == userID && n.ExpiresAt.After(now) {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return repository.ErrNotFound
	}
	n.Read = true
	return nil
}

func (s *Store) DeleteNotification(ctx context.Context, id, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return repository.ErrNotFound
	}
	delete(s.notifications, id)
	return nil
}

func (s *Store) DeleteExpiredNotifications(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, n := range s.notifications {
		if !n.ExpiresAt.After(now) {
			delete(s.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}
