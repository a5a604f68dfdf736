// Package store holds the persistence layer for users and travel
// journals. Handlers depend on the interfaces here; the Mongo
// implementation backs the running service and the in-memory one backs
// the tests.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/triplog/triplog-backend/internal/models"
)

var (
	// ErrNotFound covers both truly missing documents and documents
	// owned by a different user: owner-scoped lookups never reveal
	// which of the two happened.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateEmail signals a registration with an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserStore interface {
	// CreateUser persists a new user, assigning its ID. Returns
	// ErrDuplicateEmail when the email is already registered.
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
}

// JournalStore is owner-scoped throughout: every lookup and mutation
// filters by both the journal ID and the owner, and every listing
// returns favourite entries first.
type JournalStore interface {
	CreateJournal(ctx context.Context, journal *models.TravelJournal) error
	JournalsByOwner(ctx context.Context, ownerID string) ([]models.TravelJournal, error)
	JournalByID(ctx context.Context, id, ownerID string) (*models.TravelJournal, error)
	UpdateJournal(ctx context.Context, journal *models.TravelJournal) error
	// DeleteJournal removes the document and returns it so the caller
	// can clean up the stored image file.
	DeleteJournal(ctx context.Context, id, ownerID string) (*models.TravelJournal, error)
	// SearchJournals matches the query as a case-insensitive substring
	// of title, journal text, or any visited location.
	SearchJournals(ctx context.Context, ownerID, query string) ([]models.TravelJournal, error)
	// JournalsByDateRange returns entries with visitedDate inclusively
	// within [start, end]. An inverted range yields an empty slice.
	JournalsByDateRange(ctx context.Context, ownerID string, start, end time.Time) ([]models.TravelJournal, error)
}

type Store interface {
	UserStore
	JournalStore
}
