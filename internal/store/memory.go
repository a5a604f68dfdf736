package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/triplog/triplog-backend/internal/models"
)

// MemoryStore is an in-memory Store used by the handler tests. It
// mirrors the semantics of MongoStore: owner-scoped lookups, unique
// emails, favourite-first listings with stable insertion order.
type MemoryStore struct {
	mu       sync.RWMutex
	users    []models.User
	journals []models.TravelJournal
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users = append(s.users, *user)
	return nil
}

func (s *MemoryStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID.Hex() == id {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteUser exists so tests can simulate a user record disappearing
// underneath a still-valid token.
func (s *MemoryStore) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID.Hex() == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return
		}
	}
}

func (s *MemoryStore) CreateJournal(_ context.Context, journal *models.TravelJournal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if journal.ID.IsZero() {
		journal.ID = primitive.NewObjectID()
	}
	s.journals = append(s.journals, *journal)
	return nil
}

// collect copies matching journals favourite-first, keeping insertion
// order within each group.
func (s *MemoryStore) collect(match func(models.TravelJournal) bool) []models.TravelJournal {
	out := []models.TravelJournal{}
	for _, j := range s.journals {
		if match(j) {
			out = append(out, j)
		}
	}
	sort.SliceStable(out, func(i, k int) bool {
		return out[i].IsFavourite && !out[k].IsFavourite
	})
	return out
}

func (s *MemoryStore) JournalsByOwner(_ context.Context, ownerID string) ([]models.TravelJournal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(j models.TravelJournal) bool {
		return j.UserID.Hex() == ownerID
	}), nil
}

func (s *MemoryStore) JournalByID(_ context.Context, id, ownerID string) (*models.TravelJournal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, j := range s.journals {
		if j.ID.Hex() == id && j.UserID.Hex() == ownerID {
			journal := j
			return &journal, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpdateJournal(_ context.Context, journal *models.TravelJournal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, j := range s.journals {
		if j.ID == journal.ID && j.UserID == journal.UserID {
			s.journals[i] = *journal
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteJournal(_ context.Context, id, ownerID string) (*models.TravelJournal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, j := range s.journals {
		if j.ID.Hex() == id && j.UserID.Hex() == ownerID {
			journal := j
			s.journals = append(s.journals[:i], s.journals[i+1:]...)
			return &journal, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) SearchJournals(_ context.Context, ownerID, query string) ([]models.TravelJournal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	return s.collect(func(j models.TravelJournal) bool {
		if j.UserID.Hex() != ownerID {
			return false
		}
		if strings.Contains(strings.ToLower(j.Title), q) || strings.Contains(strings.ToLower(j.Journal), q) {
			return true
		}
		for _, loc := range j.VisitedLocation {
			if strings.Contains(strings.ToLower(loc), q) {
				return true
			}
		}
		return false
	}), nil
}

func (s *MemoryStore) JournalsByDateRange(_ context.Context, ownerID string, start, end time.Time) ([]models.TravelJournal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(j models.TravelJournal) bool {
		if j.UserID.Hex() != ownerID {
			return false
		}
		return !j.VisitedDate.Before(start) && !j.VisitedDate.After(end)
	}), nil
}
