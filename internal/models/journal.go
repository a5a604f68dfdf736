package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TravelJournal is a single travel memory owned by one user.
// VisitedLocation keeps the order the client supplied.
type TravelJournal struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedOn time.Time          `bson:"createdOn" json:"createdOn"`

	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Title           string             `bson:"title" json:"title"`
	Journal         string             `bson:"journal" json:"journal"`
	VisitedLocation []string           `bson:"visitedLocation" json:"visitedLocation"`
	ImageURL        string             `bson:"imageUrl" json:"imageUrl"`
	VisitedDate     time.Time          `bson:"visitedDate" json:"visitedDate"`
	IsFavourite     bool               `bson:"isFavourite" json:"isFavourite"`
}
