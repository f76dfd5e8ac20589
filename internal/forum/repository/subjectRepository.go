package repository

import (
	"context"

	customerrors "forum/internal/customErrors"
	"forum/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SubjectQuery struct {
	ID     *primitive.ObjectID
	Author *primitive.ObjectID
	Title  *string
}

func (q SubjectQuery) filter() bson.M {
	filter := bson.M{}
	if q.ID != nil {
		filter["_id"] = *q.ID
	}
	if q.Author != nil {
		filter["author"] = *q.Author
	}
	if q.Title != nil {
		filter["title"] = *q.Title
	}
	return filter
}

type SubjectRepository interface {
	Save(ctx context.Context, subject *models.Subject) (*models.Subject, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Subject, error)
	FindOne(ctx context.Context, query SubjectQuery) (*models.Subject, error)
	FindAll(ctx context.Context) ([]models.Subject, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Subject, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	PushResponse(ctx context.Context, subjectID, postID primitive.ObjectID) error
	PullResponse(ctx context.Context, subjectID, postID primitive.ObjectID) error
}

type SubjectRepositoryImpl struct {
	collection *mongo.Collection
}

func NewSubjectRepository(db *mongo.Database) SubjectRepository {
	return &SubjectRepositoryImpl{collection: db.Collection("subjects")}
}

func (r *SubjectRepositoryImpl) Save(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	result, err := r.collection.InsertOne(ctx, subject)
	if err != nil {
		return nil, err
	}

	subject.ID = result.InsertedID.(primitive.ObjectID)
	return subject, nil
}

func (r *SubjectRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Subject, error) {
	return r.FindOne(ctx, SubjectQuery{ID: &id})
}

func (r *SubjectRepositoryImpl) FindOne(ctx context.Context, query SubjectQuery) (*models.Subject, error) {
	var subject models.Subject

	err := r.collection.FindOne(ctx, query.filter()).Decode(&subject)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, customerrors.ErrSubjectNotFound
		}
		return nil, err
	}

	return &subject, nil
}

func (r *SubjectRepositoryImpl) FindAll(ctx context.Context) ([]models.Subject, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var subjects []models.Subject
	if err := cursor.All(ctx, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *SubjectRepositoryImpl) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Subject, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	var found []models.Subject
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Subject, len(found))
	for _, subject := range found {
		byID[subject.ID] = subject
	}

	subjects := make([]models.Subject, 0, len(ids))
	for _, id := range ids {
		if subject, ok := byID[id]; ok {
			subjects = append(subjects, subject)
		}
	}
	return subjects, nil
}

func (r *SubjectRepositoryImpl) Update(ctx context.Context, subject *models.Subject) error {
	update := bson.M{"$set": bson.M{
		"message":  subject.Message,
		"title":    subject.Title,
		"editedAt": subject.EditedAt,
	}}

	result, err := r.collection.UpdateByID(ctx, subject.ID, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return customerrors.ErrSubjectNotFound
	}
	return nil
}

func (r *SubjectRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return customerrors.ErrSubjectNotFound
	}
	return nil
}

func (r *SubjectRepositoryImpl) PushResponse(ctx context.Context, subjectID, postID primitive.ObjectID) error {
	result, err := r.collection.UpdateByID(ctx, subjectID, bson.M{"$push": bson.M{"responses": postID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return customerrors.ErrSubjectNotFound
	}
	return nil
}

func (r *SubjectRepositoryImpl) PullResponse(ctx context.Context, subjectID, postID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, subjectID, bson.M{"$pull": bson.M{"responses": postID}})
	return err
}
