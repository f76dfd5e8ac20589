package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username  string               `bson:"username" json:"username"`
	Email     string               `bson:"email" json:"email"`
	Password  string               `bson:"password" json:"-"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	LastLogin *time.Time           `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	Posts     []primitive.ObjectID `bson:"posts" json:"posts"`
	Subjects  []primitive.ObjectID `bson:"subjects" json:"subjects"`
}

// PopulatedUser is the outward-facing projection of a User with its post and
// subject references expanded. It carries no password field at all.
type PopulatedUser struct {
	ID        primitive.ObjectID `json:"id"`
	Username  string             `json:"username"`
	Email     string             `json:"email"`
	CreatedAt time.Time          `json:"createdAt"`
	LastLogin *time.Time         `json:"lastLogin,omitempty"`
	Posts     []Post             `json:"posts"`
	Subjects  []Subject          `json:"subjects"`
}
