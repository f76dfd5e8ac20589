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

type PostService interface {
	CreatePost(ctx context.Context, subjectID, token, message string) (*models.PopulatedPost, error)
	UpdatePost(ctx context.Context, postID, token string, message *string) (*models.PopulatedPost, error)
	DeletePost(ctx context.Context, postID, token string) (*models.Post, error)
	GetPost(ctx context.Context, query repository.PostQuery) (*models.PopulatedPost, error)
	GetPosts(ctx context.Context) ([]models.PopulatedPost, error)
}

type PostServiceImpl struct {
	posts    repository.PostRepository
	subjects repository.SubjectRepository
	users    authrepo.UserRepository
	guard    Guard
}

func NewPostService(posts repository.PostRepository, subjects repository.SubjectRepository, users authrepo.UserRepository, guard Guard) PostService {
	return &PostServiceImpl{posts: posts, subjects: subjects, users: users, guard: guard}
}

// CreatePost saves the post before linking it anywhere, so a crash between
// the two writes can only leave an orphan post, never a subject pointing at a
// post that does not exist.
func (s *PostServiceImpl) CreatePost(ctx context.Context, subjectID, token, message string) (*models.PopulatedPost, error) {
	actor, err := s.guard.ResolveActor(ctx, token)
	if err != nil {
		return nil, err
	}

	id, err := primitive.ObjectIDFromHex(subjectID)
	if err != nil {
		return nil, customerrors.ErrInvalidID
	}

	subject, err := s.subjects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Author:    actor.ID,
		Subject:   &subject.ID,
		CreatedAt: time.Now().UTC(),
		Message:   message,
	}

	post, err = s.posts.Save(ctx, post)
	if err != nil {
		return nil, err
	}

	if err := s.subjects.PushResponse(ctx, subject.ID, post.ID); err != nil {
		return nil, err
	}
	if err := s.users.PushPostRef(ctx, actor.ID, post.ID); err != nil {
		return nil, err
	}

	return populatePost(post, actor), nil
}

func (s *PostServiceImpl) UpdatePost(ctx context.Context, postID, token string, message *string) (*models.PopulatedPost, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, customerrors.ErrInvalidID
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.guard.AuthorizeOwner(token, post.Author); err != nil {
		return nil, err
	}

	if message != nil {
		post.Message = *message
	}
	editedAt := time.Now().UTC()
	post.EditedAt = &editedAt

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, post.Author)
	if err != nil {
		return nil, err
	}

	return populatePost(post, author), nil
}

// DeletePost unlinks the post from its parent subject and its author before
// removing the document, the reverse of the order used on create.
func (s *PostServiceImpl) DeletePost(ctx context.Context, postID, token string) (*models.Post, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, customerrors.ErrInvalidID
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.guard.AuthorizeOwner(token, post.Author); err != nil {
		return nil, err
	}

	if post.Subject != nil {
		if err := s.subjects.PullResponse(ctx, *post.Subject, post.ID); err != nil {
			return nil, err
		}
	}
	if err := s.users.PullPostRef(ctx, post.Author, post.ID); err != nil {
		return nil, err
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *PostServiceImpl) GetPost(ctx context.Context, query repository.PostQuery) (*models.PopulatedPost, error) {
	post, err := s.posts.FindOne(ctx, query)
	if err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, post.Author)
	if err != nil {
		return nil, err
	}

	return populatePost(post, author), nil
}

func (s *PostServiceImpl) GetPosts(ctx context.Context) ([]models.PopulatedPost, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]primitive.ObjectID, 0, len(posts))
	for _, post := range posts {
		authorIDs = append(authorIDs, post.Author)
	}
	authors, err := s.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	byID := usersByID(authors)

	populated := make([]models.PopulatedPost, 0, len(posts))
	for i := range posts {
		populated = append(populated, *populatePost(&posts[i], byID[posts[i].Author]))
	}
	return populated, nil
}
