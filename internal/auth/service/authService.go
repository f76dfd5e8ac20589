package service

import (
	"context"
	"time"

	"forum/internal/auth/repository"
	"forum/internal/config"
	customerrors "forum/internal/customErrors"
	"forum/internal/dto"
	forumrepo "forum/internal/forum/repository"
	"forum/internal/models"
	"forum/internal/password"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, username, pwd string) (*dto.TokenResponse, error)
	UpdatePassword(ctx context.Context, token, newPassword string) (bool, error)
	ResolveActor(ctx context.Context, token string) (*models.User, error)
	AuthorizeOwner(token string, resourceAuthor primitive.ObjectID) (primitive.ObjectID, error)
	GetUser(ctx context.Context, query repository.UserQuery) (*models.PopulatedUser, error)
	GetUsers(ctx context.Context) ([]models.PopulatedUser, error)
}

type AuthServiceImpl struct {
	users    repository.UserRepository
	posts    forumrepo.PostRepository
	subjects forumrepo.SubjectRepository
	jwt      config.Token
}

func NewAuthService(users repository.UserRepository, posts forumrepo.PostRepository, subjects forumrepo.SubjectRepository, jwt config.Token) AuthService {
	return &AuthServiceImpl{users: users, posts: posts, subjects: subjects, jwt: jwt}
}

func (s *AuthServiceImpl) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.users.CheckUserExists(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		CreatedAt: time.Now().UTC(),
		Posts:     []primitive.ObjectID{},
		Subjects:  []primitive.ObjectID{},
	}

	return s.users.Save(ctx, user)
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, pwd string) (*dto.TokenResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !password.Verify(pwd, user.Password) {
		return nil, customerrors.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateJWT(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	if err := s.users.StampLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{Token: token, Username: user.Username}, nil
}

// UpdatePassword rehashes and stores the actor's password. Previously issued
// tokens stay valid until they expire.
func (s *AuthServiceImpl) UpdatePassword(ctx context.Context, token, newPassword string) (bool, error) {
	actor, err := s.ResolveActor(ctx, token)
	if err != nil {
		return false, err
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return false, err
	}

	if err := s.users.UpdatePassword(ctx, actor.ID, hashed); err != nil {
		return false, err
	}

	return true, nil
}

// ResolveActor decodes the token and loads the user it was issued for. A
// token whose user has since been deleted yields ErrUserNotFound.
func (s *AuthServiceImpl) ResolveActor(ctx context.Context, token string) (*models.User, error) {
	actorID, err := s.decodeActorID(token)
	if err != nil {
		return nil, err
	}

	return s.users.FindByID(ctx, actorID)
}

// AuthorizeOwner checks that the token's identity matches the recorded author
// of a resource. It is a pure check: no lookups, no side effects.
func (s *AuthServiceImpl) AuthorizeOwner(token string, resourceAuthor primitive.ObjectID) (primitive.ObjectID, error) {
	actorID, err := s.decodeActorID(token)
	if err != nil {
		return primitive.NilObjectID, err
	}

	if actorID != resourceAuthor {
		return primitive.NilObjectID, customerrors.ErrNotResourceOwner
	}

	return actorID, nil
}

func (s *AuthServiceImpl) GetUser(ctx context.Context, query repository.UserQuery) (*models.PopulatedUser, error) {
	user, err := s.users.FindOne(ctx, query)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.FindByIDs(ctx, user.Posts)
	if err != nil {
		return nil, err
	}

	subjects, err := s.subjects.FindByIDs(ctx, user.Subjects)
	if err != nil {
		return nil, err
	}

	return populateUser(user, posts, subjects), nil
}

func (s *AuthServiceImpl) GetUsers(ctx context.Context) ([]models.PopulatedUser, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	populated := make([]models.PopulatedUser, 0, len(users))
	for i := range users {
		posts, err := s.posts.FindByIDs(ctx, users[i].Posts)
		if err != nil {
			return nil, err
		}
		populated = append(populated, *populateUser(&users[i], posts, nil))
	}
	return populated, nil
}

func (s *AuthServiceImpl) decodeActorID(token string) (primitive.ObjectID, error) {
	claims, err := s.jwt.ValidateJWT(token)
	if err != nil {
		return primitive.NilObjectID, customerrors.ErrInvalidToken
	}

	actorID, err := primitive.ObjectIDFromHex(claims.UserID())
	if err != nil {
		return primitive.NilObjectID, customerrors.ErrInvalidToken
	}

	return actorID, nil
}

func populateUser(user *models.User, posts []models.Post, subjects []models.Subject) *models.PopulatedUser {
	return &models.PopulatedUser{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
		Posts:     posts,
		Subjects:  subjects,
	}
}
