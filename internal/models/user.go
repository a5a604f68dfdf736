package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedOn time.Time          `bson:"createdOn" json:"createdOn"`

	FullName string `bson:"fullName" json:"fullName"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // Don't return password hash in JSON
}

// Profile is the subset of User returned by the auth endpoints.
func (u *User) Profile() map[string]interface{} {
	return map[string]interface{}{
		"fullName": u.FullName,
		"email":    u.Email,
	}
}
