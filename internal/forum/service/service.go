// Package service implements the subject and post lifecycle: every mutation
// resolves the acting user from its token and enforces authorship before any
// write happens.
package service

import (
	"context"

	"forum/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Guard is the slice of the auth service the forum mutations depend on.
type Guard interface {
	ResolveActor(ctx context.Context, token string) (*models.User, error)
	AuthorizeOwner(token string, resourceAuthor primitive.ObjectID) (primitive.ObjectID, error)
}

func populatePost(post *models.Post, author *models.User) *models.PopulatedPost {
	return &models.PopulatedPost{
		ID:        post.ID,
		Author:    author,
		Subject:   post.Subject,
		CreatedAt: post.CreatedAt,
		EditedAt:  post.EditedAt,
		Message:   post.Message,
	}
}

func populateSubject(subject *models.Subject, author *models.User, responses []models.PopulatedPost) *models.PopulatedSubject {
	if responses == nil {
		responses = []models.PopulatedPost{}
	}
	return &models.PopulatedSubject{
		ID:        subject.ID,
		Author:    author,
		Responses: responses,
		CreatedAt: subject.CreatedAt,
		EditedAt:  subject.EditedAt,
		Message:   subject.Message,
		Title:     subject.Title,
	}
}

func usersByID(users []models.User) map[primitive.ObjectID]*models.User {
	byID := make(map[primitive.ObjectID]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	return byID
}
