// Package graph wires the forum services into a GraphQL schema. Resolvers
// are thin translations: parse arguments, call the service, convert the
// result. Errors propagate untouched into the response's errors payload.
package graph

import (
	authrepo "forum/internal/auth/repository"
	authservice "forum/internal/auth/service"
	customerrors "forum/internal/customErrors"
	"forum/internal/dto"
	forumrepo "forum/internal/forum/repository"
	forumservice "forum/internal/forum/service"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Resolver struct {
	auth     authservice.AuthService
	subjects forumservice.SubjectService
	posts    forumservice.PostService
}

func NewResolver(auth authservice.AuthService, subjects forumservice.SubjectService, posts forumservice.PostService) *Resolver {
	return &Resolver{auth: auth, subjects: subjects, posts: posts}
}

// NewSchema builds the executable schema. User/Subject/Post reference each
// other, so the cyclic fields are attached after all three types exist.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.ID},
			"username":  &graphql.Field{Type: graphql.String},
			"email":     &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"lastLogin": &graphql.Field{Type: graphql.DateTime},
		},
	})

	postType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.ID},
			"subject":   &graphql.Field{Type: graphql.ID},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"editedAt":  &graphql.Field{Type: graphql.DateTime},
			"message":   &graphql.Field{Type: graphql.String},
		},
	})

	subjectType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Subject",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.ID},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"editedAt":  &graphql.Field{Type: graphql.DateTime},
			"message":   &graphql.Field{Type: graphql.String},
			"title":     &graphql.Field{Type: graphql.String},
		},
	})

	tokenType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Token",
		Fields: graphql.Fields{
			"token":    &graphql.Field{Type: graphql.String},
			"username": &graphql.Field{Type: graphql.String},
		},
	})

	userType.AddFieldConfig("posts", &graphql.Field{Type: graphql.NewList(postType)})
	userType.AddFieldConfig("subjects", &graphql.Field{Type: graphql.NewList(subjectType)})
	postType.AddFieldConfig("author", &graphql.Field{Type: userType})
	subjectType.AddFieldConfig("author", &graphql.Field{Type: userType})
	subjectType.AddFieldConfig("responses", &graphql.Field{Type: graphql.NewList(postType)})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"status": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return "GraphQL status: OK", nil
				},
			},
			"users": &graphql.Field{
				Type: graphql.NewList(userType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					users, err := r.auth.GetUsers(p.Context)
					if err != nil {
						return nil, err
					}
					views := make([]User, 0, len(users))
					for i := range users {
						views = append(views, *fromPopulatedUser(&users[i]))
					}
					return views, nil
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id":       &graphql.ArgumentConfig{Type: graphql.ID},
					"username": &graphql.ArgumentConfig{Type: graphql.String},
					"email":    &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					query := authrepo.UserQuery{
						Username: optStringArg(p, "username"),
						Email:    optStringArg(p, "email"),
					}
					id, err := optIDArg(p, "id")
					if err != nil {
						return nil, err
					}
					query.ID = id

					user, err := r.auth.GetUser(p.Context, query)
					if err != nil {
						return nil, err
					}
					return fromPopulatedUser(user), nil
				},
			},
			"posts": &graphql.Field{
				Type: graphql.NewList(postType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					posts, err := r.posts.GetPosts(p.Context)
					if err != nil {
						return nil, err
					}
					views := make([]Post, 0, len(posts))
					for i := range posts {
						views = append(views, *fromPopulatedPost(&posts[i]))
					}
					return views, nil
				},
			},
			"post": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, err := idArg(p, "id")
					if err != nil {
						return nil, err
					}
					post, err := r.posts.GetPost(p.Context, forumrepo.PostQuery{ID: &id})
					if err != nil {
						return nil, err
					}
					return fromPopulatedPost(post), nil
				},
			},
			"subjects": &graphql.Field{
				Type: graphql.NewList(subjectType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					subjects, err := r.subjects.GetSubjects(p.Context)
					if err != nil {
						return nil, err
					}
					views := make([]Subject, 0, len(subjects))
					for i := range subjects {
						views = append(views, *fromPopulatedSubject(&subjects[i]))
					}
					return views, nil
				},
			},
			"subject": &graphql.Field{
				Type: subjectType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.ID},
					"title": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					query := forumrepo.SubjectQuery{Title: optStringArg(p, "title")}
					id, err := optIDArg(p, "id")
					if err != nil {
						return nil, err
					}
					query.ID = id

					subject, err := r.subjects.GetSubject(p.Context, query)
					if err != nil {
						return nil, err
					}
					return fromPopulatedSubject(subject), nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					req := dto.CreateUserRequest{
						Username: stringArg(p, "username"),
						Email:    stringArg(p, "email"),
						Password: stringArg(p, "password"),
					}
					user, err := r.auth.CreateUser(p.Context, req)
					if err != nil {
						return nil, err
					}
					return fromUser(user), nil
				},
			},
			"login": &graphql.Field{
				Type: tokenType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					res, err := r.auth.Login(p.Context, stringArg(p, "username"), stringArg(p, "password"))
					if err != nil {
						return nil, err
					}
					return &Token{Token: res.Token, Username: res.Username}, nil
				},
			},
			"updatePassword": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"token":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.auth.UpdatePassword(p.Context, stringArg(p, "token"), stringArg(p, "password"))
				},
			},
			"createSubject": &graphql.Field{
				Type: subjectType,
				Args: graphql.FieldConfigArgument{
					"token":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"message": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"title":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					subject, err := r.subjects.CreateSubject(p.Context,
						stringArg(p, "token"), stringArg(p, "message"), stringArg(p, "title"))
					if err != nil {
						return nil, err
					}
					return fromPopulatedSubject(subject), nil
				},
			},
			"updateSubject": &graphql.Field{
				Type: subjectType,
				Args: graphql.FieldConfigArgument{
					"subjectId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"token":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"message":   &graphql.ArgumentConfig{Type: graphql.String},
					"title":     &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					subject, err := r.subjects.UpdateSubject(p.Context,
						stringArg(p, "subjectId"), stringArg(p, "token"),
						optStringArg(p, "message"), optStringArg(p, "title"))
					if err != nil {
						return nil, err
					}
					return fromPopulatedSubject(subject), nil
				},
			},
			"deleteSubject": &graphql.Field{
				Type: subjectType,
				Args: graphql.FieldConfigArgument{
					"subjectId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"token":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					subject, err := r.subjects.DeleteSubject(p.Context,
						stringArg(p, "subjectId"), stringArg(p, "token"))
					if err != nil {
						return nil, err
					}
					return fromSubject(subject), nil
				},
			},
			"createPost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"subjectId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"token":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"message":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					post, err := r.posts.CreatePost(p.Context,
						stringArg(p, "subjectId"), stringArg(p, "token"), stringArg(p, "message"))
					if err != nil {
						return nil, err
					}
					return fromPopulatedPost(post), nil
				},
			},
			"editPost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"postId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"token":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"message": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					post, err := r.posts.UpdatePost(p.Context,
						stringArg(p, "postId"), stringArg(p, "token"), optStringArg(p, "message"))
					if err != nil {
						return nil, err
					}
					return fromPopulatedPost(post), nil
				},
			},
			"deletePost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"token":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					post, err := r.posts.DeletePost(p.Context,
						stringArg(p, "postId"), stringArg(p, "token"))
					if err != nil {
						return nil, err
					}
					return fromPost(post), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func stringArg(p graphql.ResolveParams, name string) string {
	value, _ := p.Args[name].(string)
	return value
}

func optStringArg(p graphql.ResolveParams, name string) *string {
	if value, ok := p.Args[name].(string); ok {
		return &value
	}
	return nil
}

func idArg(p graphql.ResolveParams, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(stringArg(p, name))
	if err != nil {
		return primitive.NilObjectID, customerrors.ErrInvalidID
	}
	return id, nil
}

func optIDArg(p graphql.ResolveParams, name string) (*primitive.ObjectID, error) {
	value, ok := p.Args[name].(string)
	if !ok {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return nil, customerrors.ErrInvalidID
	}
	return &id, nil
}
