package repository

import (
	"context"
	"strings"
	"time"

	customerrors "forum/internal/customErrors"
	"forum/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserQuery is the explicit set of parameters a user lookup accepts. Only the
// fields listed here ever reach the database filter.
type UserQuery struct {
	ID       *primitive.ObjectID
	Username *string
	Email    *string
}

func (q UserQuery) filter() bson.M {
	filter := bson.M{}
	if q.ID != nil {
		filter["_id"] = *q.ID
	}
	if q.Username != nil {
		filter["username"] = *q.Username
	}
	if q.Email != nil {
		filter["email"] = *q.Email
	}
	return filter
}

type UserRepository interface {
	CheckUserExists(ctx context.Context, username, email string) error
	Save(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindOne(ctx context.Context, query UserQuery) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hashed string) error
	StampLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
	PushPostRef(ctx context.Context, userID, postID primitive.ObjectID) error
	PushSubjectRef(ctx context.Context, userID, subjectID primitive.ObjectID) error
	PullPostRef(ctx context.Context, userID, postID primitive.ObjectID) error
	PullPostRefs(ctx context.Context, postIDs []primitive.ObjectID) error
	PullSubjectRef(ctx context.Context, userID, subjectID primitive.ObjectID) error
}

type UserRepositoryImpl struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &UserRepositoryImpl{collection: db.Collection("users")}
}

func (r *UserRepositoryImpl) CheckUserExists(ctx context.Context, username, email string) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return err
	}
	if count > 0 {
		return customerrors.ErrUsernameAlreadyExists
	}

	count, err = r.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if count > 0 {
		return customerrors.ErrEmailAlreadyExists
	}

	return nil
}

func (r *UserRepositoryImpl) Save(ctx context.Context, user *models.User) (*models.User, error) {
	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "email") {
				return nil, customerrors.ErrEmailAlreadyExists
			}
			return nil, customerrors.ErrUsernameAlreadyExists
		}
		return nil, err
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.FindOne(ctx, UserQuery{ID: &id})
}

func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.FindOne(ctx, UserQuery{Username: &username})
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, query UserQuery) (*models.User, error) {
	var user models.User

	err := r.collection.FindOne(ctx, query.filter()).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, customerrors.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepositoryImpl) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashed string) error {
	result, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"password": hashed}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return customerrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) StampLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"lastLogin": at}})
	return err
}

func (r *UserRepositoryImpl) PushPostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, userID, bson.M{"$push": bson.M{"posts": postID}})
	return err
}

func (r *UserRepositoryImpl) PushSubjectRef(ctx context.Context, userID, subjectID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, userID, bson.M{"$push": bson.M{"subjects": subjectID}})
	return err
}

func (r *UserRepositoryImpl) PullPostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, userID, bson.M{"$pull": bson.M{"posts": postID}})
	return err
}

// PullPostRefs clears the given post ids from every user document, used after
// a cascade removed the posts themselves.
func (r *UserRepositoryImpl) PullPostRefs(ctx context.Context, postIDs []primitive.ObjectID) error {
	if len(postIDs) == 0 {
		return nil
	}

	_, err := r.collection.UpdateMany(ctx, bson.M{},
		bson.M{"$pull": bson.M{"posts": bson.M{"$in": postIDs}}})
	return err
}

func (r *UserRepositoryImpl) PullSubjectRef(ctx context.Context, userID, subjectID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, userID, bson.M{"$pull": bson.M{"subjects": subjectID}})
	return err
}
