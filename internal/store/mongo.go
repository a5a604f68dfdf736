package store

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/triplog/triplog-backend/internal/models"
)

const (
	usersCollection    = "users"
	journalsCollection = "travel_journals"

	queryTimeout = 5 * time.Second
)

// MongoStore implements Store on top of a Mongo database.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) users() *mongo.Collection {
	return s.db.Collection(usersCollection)
}

func (s *MongoStore) journals() *mongo.Collection {
	return s.db.Collection(journalsCollection)
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := s.users().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *MongoStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	err = s.users().FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoStore) CreateJournal(ctx context.Context, journal *models.TravelJournal) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if journal.ID.IsZero() {
		journal.ID = primitive.NewObjectID()
	}
	_, err := s.journals().InsertOne(ctx, journal)
	return err
}

// ownerFilter scopes a lookup to (id, ownerId). Unparseable IDs behave
// like missing documents.
func ownerFilter(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrNotFound
	}
	return bson.M{"_id": oid, "userId": owner}, nil
}

// favouritesFirst sorts favourite entries to the front of listings.
var favouritesFirst = options.Find().SetSort(bson.D{{Key: "isFavourite", Value: -1}})

func (s *MongoStore) findJournals(ctx context.Context, filter bson.M) ([]models.TravelJournal, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.journals().Find(ctx, filter, favouritesFirst)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	journals := []models.TravelJournal{}
	if err := cursor.All(ctx, &journals); err != nil {
		return nil, err
	}
	return journals, nil
}

func (s *MongoStore) JournalsByOwner(ctx context.Context, ownerID string) ([]models.TravelJournal, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findJournals(ctx, bson.M{"userId": owner})
}

func (s *MongoStore) JournalByID(ctx context.Context, id, ownerID string) (*models.TravelJournal, error) {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var journal models.TravelJournal
	err = s.journals().FindOne(ctx, filter).Decode(&journal)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &journal, nil
}

func (s *MongoStore) UpdateJournal(ctx context.Context, journal *models.TravelJournal) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.journals().ReplaceOne(ctx, bson.M{"_id": journal.ID, "userId": journal.UserID}, journal)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteJournal(ctx context.Context, id, ownerID string) (*models.TravelJournal, error) {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var journal models.TravelJournal
	err = s.journals().FindOneAndDelete(ctx, filter).Decode(&journal)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &journal, nil
}

func (s *MongoStore) SearchJournals(ctx context.Context, ownerID, query string) ([]models.TravelJournal, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrNotFound
	}

	// Quote the query so it matches as a literal substring, not a
	// regular expression.
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"userId": owner,
		"$or": []bson.M{
			{"title": pattern},
			{"journal": pattern},
			{"visitedLocation": pattern},
		},
	}
	return s.findJournals(ctx, filter)
}

func (s *MongoStore) JournalsByDateRange(ctx context.Context, ownerID string, start, end time.Time) ([]models.TravelJournal, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrNotFound
	}
	filter := bson.M{
		"userId":      owner,
		"visitedDate": bson.M{"$gte": start, "$lte": end},
	}
	return s.findJournals(ctx, filter)
}
