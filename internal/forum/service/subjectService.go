package service

import (
	"context"
	"time"

	authrepo "forum/internal/auth/repository"
	customerrors "forum/internal/customErrors"
	"forum/internal/forum/repository"
	"forum/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubjectService interface {
	CreateSubject(ctx context.Context, token, message, title string) (*models.PopulatedSubject, error)
	UpdateSubject(ctx context.Context, subjectID, token string, message, title *string) (*models.PopulatedSubject, error)
	DeleteSubject(ctx context.Context, subjectID, token string) (*models.Subject, error)
	GetSubject(ctx context.Context, query repository.SubjectQuery) (*models.PopulatedSubject, error)
	GetSubjects(ctx context.Context) ([]models.PopulatedSubject, error)
}

type SubjectServiceImpl struct {
	subjects repository.SubjectRepository
	posts    repository.PostRepository
	users    authrepo.UserRepository
	guard    Guard
}

func NewSubjectService(subjects repository.SubjectRepository, posts repository.PostRepository, users authrepo.UserRepository, guard Guard) SubjectService {
	return &SubjectServiceImpl{subjects: subjects, posts: posts, users: users, guard: guard}
}

func (s *SubjectServiceImpl) CreateSubject(ctx context.Context, token, message, title string) (*models.PopulatedSubject, error) {
	actor, err := s.guard.ResolveActor(ctx, token)
	if err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Author:    actor.ID,
		Responses: []primitive.ObjectID{},
		CreatedAt: time.Now().UTC(),
		Message:   message,
		Title:     title,
	}

	subject, err = s.subjects.Save(ctx, subject)
	if err != nil {
		return nil, err
	}

	if err := s.users.PushSubjectRef(ctx, actor.ID, subject.ID); err != nil {
		return nil, err
	}

	return populateSubject(subject, actor, nil), nil
}

func (s *SubjectServiceImpl) UpdateSubject(ctx context.Context, subjectID, token string, message, title *string) (*models.PopulatedSubject, error) {
	id, err := primitive.ObjectIDFromHex(subjectID)
	if err != nil {
		return nil, customerrors.ErrInvalidID
	}

	subject, err := s.subjects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.guard.AuthorizeOwner(token, subject.Author); err != nil {
		return nil, err
	}

	if message != nil {
		subject.Message = *message
	}
	if title != nil {
		subject.Title = *title
	}
	editedAt := time.Now().UTC()
	subject.EditedAt = &editedAt

	if err := s.subjects.Update(ctx, subject); err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, subject.Author)
	if err != nil {
		return nil, err
	}

	return populateSubject(subject, author, nil), nil
}

// DeleteSubject cascades over the subject's responses: every referenced post
// is removed before the subject itself, and any failure removing posts aborts
// the whole deletion so no subject ever points at a missing post.
func (s *SubjectServiceImpl) DeleteSubject(ctx context.Context, subjectID, token string) (*models.Subject, error) {
	id, err := primitive.ObjectIDFromHex(subjectID)
	if err != nil {
		return nil, customerrors.ErrInvalidID
	}

	subject, err := s.subjects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.guard.AuthorizeOwner(token, subject.Author); err != nil {
		return nil, err
	}

	if err := s.posts.DeleteMany(ctx, subject.Responses); err != nil {
		return nil, err
	}

	if err := s.subjects.Delete(ctx, subject.ID); err != nil {
		return nil, err
	}

	if err := s.users.PullPostRefs(ctx, subject.Responses); err != nil {
		return nil, err
	}
	if err := s.users.PullSubjectRef(ctx, subject.Author, subject.ID); err != nil {
		return nil, err
	}

	return subject, nil
}

func (s *SubjectServiceImpl) GetSubject(ctx context.Context, query repository.SubjectQuery) (*models.PopulatedSubject, error) {
	subject, err := s.subjects.FindOne(ctx, query)
	if err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, subject.Author)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.FindByIDs(ctx, subject.Responses)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]primitive.ObjectID, 0, len(posts))
	for _, post := range posts {
		authorIDs = append(authorIDs, post.Author)
	}
	postAuthors, err := s.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	byID := usersByID(postAuthors)

	responses := make([]models.PopulatedPost, 0, len(posts))
	for i := range posts {
		responses = append(responses, *populatePost(&posts[i], byID[posts[i].Author]))
	}

	return populateSubject(subject, author, responses), nil
}

func (s *SubjectServiceImpl) GetSubjects(ctx context.Context) ([]models.PopulatedSubject, error) {
	subjects, err := s.subjects.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]primitive.ObjectID, 0, len(subjects))
	for _, subject := range subjects {
		authorIDs = append(authorIDs, subject.Author)
	}
	authors, err := s.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	byID := usersByID(authors)

	populated := make([]models.PopulatedSubject, 0, len(subjects))
	for i := range subjects {
		populated = append(populated, *populateSubject(&subjects[i], byID[subjects[i].Author], nil))
	}
	return populated, nil
}
