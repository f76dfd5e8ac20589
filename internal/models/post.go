package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a single message, optionally attached to a parent subject.
type Post struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Author    primitive.ObjectID  `bson:"author" json:"author"`
	Subject   *primitive.ObjectID `bson:"subject,omitempty" json:"subject,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	EditedAt  *time.Time          `bson:"editedAt,omitempty" json:"editedAt,omitempty"`
	Message   string              `bson:"message" json:"message"`
}

type PopulatedPost struct {
	ID        primitive.ObjectID  `json:"id"`
	Author    *User               `json:"author"`
	Subject   *primitive.ObjectID `json:"subject,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	EditedAt  *time.Time          `json:"editedAt,omitempty"`
	Message   string              `json:"message"`
}
