package repository_test

import (
	"context"
	"testing"
	"time"

	"forum/internal/auth/repository"
	customerrors "forum/internal/customErrors"
	"forum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const usersNs = "forum.users"

func TestUserSave(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Successful insert assigns the generated id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := repository.NewUserRepository(mt.DB)
		user, err := repo.Save(context.Background(), &models.User{
			Username:  "newuser",
			Email:     "new@example.com",
			Password:  "hashed",
			CreatedAt: time.Now().UTC(),
			Posts:     []primitive.ObjectID{},
			Subjects:  []primitive.ObjectID{},
		})

		require.NoError(mt, err)
		assert.False(mt, user.ID.IsZero())
	})

	mt.Run("Duplicate email index", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: forum.users index: email_1",
		}))

		repo := repository.NewUserRepository(mt.DB)
		user, err := repo.Save(context.Background(), &models.User{Username: "newuser", Email: "taken@example.com"})

		assert.Equal(mt, customerrors.ErrEmailAlreadyExists, err)
		assert.Nil(mt, user)
	})

	mt.Run("Duplicate username index", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: forum.users index: username_1",
		}))

		repo := repository.NewUserRepository(mt.DB)
		user, err := repo.Save(context.Background(), &models.User{Username: "taken", Email: "new@example.com"})

		assert.Equal(mt, customerrors.ErrUsernameAlreadyExists, err)
		assert.Nil(mt, user)
	})
}

func TestUserFindOne(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, usersNs, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "username", Value: "testuser"},
			{Key: "email", Value: "test@example.com"},
			{Key: "password", Value: "hashed"},
			{Key: "createdAt", Value: time.Now().UTC()},
			{Key: "posts", Value: bson.A{}},
			{Key: "subjects", Value: bson.A{}},
		}))

		repo := repository.NewUserRepository(mt.DB)
		user, err := repo.FindByID(context.Background(), id)

		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, "testuser", user.Username)
	})

	mt.Run("Missing user maps to a not found error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNs, mtest.FirstBatch))

		repo := repository.NewUserRepository(mt.DB)
		user, err := repo.FindByUsername(context.Background(), "ghost")

		assert.Equal(mt, customerrors.ErrUserNotFound, err)
		assert.Nil(mt, user)
	})
}

func TestCheckUserExists(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Username taken", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNs, mtest.FirstBatch,
			bson.D{{Key: "n", Value: int64(1)}}))

		repo := repository.NewUserRepository(mt.DB)
		err := repo.CheckUserExists(context.Background(), "taken", "new@example.com")

		assert.Equal(mt, customerrors.ErrUsernameAlreadyExists, err)
	})

	mt.Run("Email taken", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, usersNs, mtest.FirstBatch),
			mtest.CreateCursorResponse(0, usersNs, mtest.FirstBatch,
				bson.D{{Key: "n", Value: int64(1)}}),
		)

		repo := repository.NewUserRepository(mt.DB)
		err := repo.CheckUserExists(context.Background(), "newuser", "taken@example.com")

		assert.Equal(mt, customerrors.ErrEmailAlreadyExists, err)
	})

	mt.Run("Both free", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, usersNs, mtest.FirstBatch),
			mtest.CreateCursorResponse(0, usersNs, mtest.FirstBatch),
		)

		repo := repository.NewUserRepository(mt.DB)
		err := repo.CheckUserExists(context.Background(), "newuser", "new@example.com")

		assert.NoError(mt, err)
	})
}

func TestUpdatePassword(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Matched user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		repo := repository.NewUserRepository(mt.DB)
		err := repo.UpdatePassword(context.Background(), primitive.NewObjectID(), "rehashed")

		assert.NoError(mt, err)
	})

	mt.Run("Unknown user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		repo := repository.NewUserRepository(mt.DB)
		err := repo.UpdatePassword(context.Background(), primitive.NewObjectID(), "rehashed")

		assert.Equal(mt, customerrors.ErrUserNotFound, err)
	})
}
