package repository

import (
	"context"

	customerrors "forum/internal/customErrors"
	"forum/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PostQuery struct {
	ID      *primitive.ObjectID
	Author  *primitive.ObjectID
	Subject *primitive.ObjectID
}

func (q PostQuery) filter() bson.M {
	filter := bson.M{}
	if q.ID != nil {
		filter["_id"] = *q.ID
	}
	if q.Author != nil {
		filter["author"] = *q.Author
	}
	if q.Subject != nil {
		filter["subject"] = *q.Subject
	}
	return filter
}

type PostRepository interface {
	Save(ctx context.Context, post *models.Post) (*models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	FindOne(ctx context.Context, query PostQuery) (*models.Post, error)
	FindAll(ctx context.Context) ([]models.Post, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) error
}

type PostRepositoryImpl struct {
	collection *mongo.Collection
}

func NewPostRepository(db *mongo.Database) PostRepository {
	return &PostRepositoryImpl{collection: db.Collection("posts")}
}

func (r *PostRepositoryImpl) Save(ctx context.Context, post *models.Post) (*models.Post, error) {
	result, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return nil, err
	}

	post.ID = result.InsertedID.(primitive.ObjectID)
	return post, nil
}

func (r *PostRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return r.FindOne(ctx, PostQuery{ID: &id})
}

func (r *PostRepositoryImpl) FindOne(ctx context.Context, query PostQuery) (*models.Post, error) {
	var post models.Post

	err := r.collection.FindOne(ctx, query.filter()).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, customerrors.ErrPostNotFound
		}
		return nil, err
	}

	return &post, nil
}

func (r *PostRepositoryImpl) FindAll(ctx context.Context) ([]models.Post, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByIDs returns the posts for the given ids, preserving the order of ids.
func (r *PostRepositoryImpl) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	var found []models.Post
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Post, len(found))
	for _, post := range found {
		byID[post.ID] = post
	}

	posts := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		if post, ok := byID[id]; ok {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	update := bson.M{"$set": bson.M{
		"message":  post.Message,
		"editedAt": post.EditedAt,
	}}

	result, err := r.collection.UpdateByID(ctx, post.ID, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return customerrors.ErrPostNotFound
	}
	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return customerrors.ErrPostNotFound
	}
	return nil
}

func (r *PostRepositoryImpl) DeleteMany(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}
