package service_test

import (
	"context"
	"time"

	authrepo "forum/internal/auth/repository"
	"forum/internal/forum/repository"
	"forum/internal/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockGuard struct {
	mock.Mock
}

func (m *MockGuard) ResolveActor(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockGuard) AuthorizeOwner(token string, resourceAuthor primitive.ObjectID) (primitive.ObjectID, error) {
	args := m.Called(token, resourceAuthor)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

// MockUserRepository records the name of every mutating call in calls, shared
// with the other repository mocks, so tests can assert cross-repository
// ordering.
type MockUserRepository struct {
	mock.Mock
	calls *[]string
}

func (m *MockUserRepository) record(name string) {
	if m.calls != nil {
		*m.calls = append(*m.calls, name)
	}
}

func (m *MockUserRepository) CheckUserExists(ctx context.Context, username, email string) error {
	args := m.Called(ctx, username, email)
	return args.Error(0)
}

func (m *MockUserRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindOne(ctx context.Context, query authrepo.UserQuery) (*models.User, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashed string) error {
	args := m.Called(ctx, id, hashed)
	return args.Error(0)
}

func (m *MockUserRepository) StampLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) PushPostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	m.record("users.PushPostRef")
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockUserRepository) PushSubjectRef(ctx context.Context, userID, subjectID primitive.ObjectID) error {
	m.record("users.PushSubjectRef")
	args := m.Called(ctx, userID, subjectID)
	return args.Error(0)
}

func (m *MockUserRepository) PullPostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	m.record("users.PullPostRef")
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockUserRepository) PullPostRefs(ctx context.Context, postIDs []primitive.ObjectID) error {
	m.record("users.PullPostRefs")
	args := m.Called(ctx, postIDs)
	return args.Error(0)
}

func (m *MockUserRepository) PullSubjectRef(ctx context.Context, userID, subjectID primitive.ObjectID) error {
	m.record("users.PullSubjectRef")
	args := m.Called(ctx, userID, subjectID)
	return args.Error(0)
}

type MockPostRepository struct {
	mock.Mock
	calls *[]string
}

func (m *MockPostRepository) record(name string) {
	if m.calls != nil {
		*m.calls = append(*m.calls, name)
	}
}

func (m *MockPostRepository) Save(ctx context.Context, post *models.Post) (*models.Post, error) {
	m.record("posts.Save")
	args := m.Called(ctx, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) FindOne(ctx context.Context, query repository.PostQuery) (*models.Post, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) FindAll(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.record("posts.Delete")
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) DeleteMany(ctx context.Context, ids []primitive.ObjectID) error {
	m.record("posts.DeleteMany")
	args := m.Called(ctx, ids)
	return args.Error(0)
}

type MockSubjectRepository struct {
	mock.Mock
	calls *[]string
}

func (m *MockSubjectRepository) record(name string) {
	if m.calls != nil {
		*m.calls = append(*m.calls, name)
	}
}

func (m *MockSubjectRepository) Save(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	m.record("subjects.Save")
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

func (m *MockSubjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

func (m *MockSubjectRepository) FindOne(ctx context.Context, query repository.SubjectQuery) (*models.Subject, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

func (m *MockSubjectRepository) FindAll(ctx context.Context) ([]models.Subject, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subject), args.Error(1)
}

func (m *MockSubjectRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Subject, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subject), args.Error(1)
}

func (m *MockSubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

func (m *MockSubjectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.record("subjects.Delete")
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubjectRepository) PushResponse(ctx context.Context, subjectID, postID primitive.ObjectID) error {
	m.record("subjects.PushResponse")
	args := m.Called(ctx, subjectID, postID)
	return args.Error(0)
}

func (m *MockSubjectRepository) PullResponse(ctx context.Context, subjectID, postID primitive.ObjectID) error {
	m.record("subjects.PullResponse")
	args := m.Called(ctx, subjectID, postID)
	return args.Error(0)
}

type forumTestDeps struct {
	users    *MockUserRepository
	posts    *MockPostRepository
	subjects *MockSubjectRepository
	guard    *MockGuard
	calls    []string
}

func setupForumTest() *forumTestDeps {
	d := &forumTestDeps{
		users:    new(MockUserRepository),
		posts:    new(MockPostRepository),
		subjects: new(MockSubjectRepository),
		guard:    new(MockGuard),
	}
	d.users.calls = &d.calls
	d.posts.calls = &d.calls
	d.subjects.calls = &d.calls
	return d
}
