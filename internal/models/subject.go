package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subject is a discussion thread. Responses is append-only under normal
// operation and cleared only when the subject itself is deleted. EditedAt
// stays unset until the first successful update.
type Subject struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Author    primitive.ObjectID   `bson:"author" json:"author"`
	Responses []primitive.ObjectID `bson:"responses" json:"responses"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	EditedAt  *time.Time           `bson:"editedAt,omitempty" json:"editedAt,omitempty"`
	Message   string               `bson:"message" json:"message"`
	Title     string               `bson:"title" json:"title"`
}

type PopulatedSubject struct {
	ID        primitive.ObjectID `json:"id"`
	Author    *User              `json:"author"`
	Responses []PopulatedPost    `json:"responses"`
	CreatedAt time.Time          `json:"createdAt"`
	EditedAt  *time.Time         `json:"editedAt,omitempty"`
	Message   string             `json:"message"`
	Title     string             `json:"title"`
}
