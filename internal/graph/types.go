package graph

import (
	"time"

	"forum/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// View structs handed to the GraphQL executor. Ids are hex strings and the
// password never appears here at all.
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin"`
	Posts     []Post     `json:"posts"`
	Subjects  []Subject  `json:"subjects"`
}

type Post struct {
	ID        string     `json:"id"`
	Author    *User      `json:"author"`
	Subject   *string    `json:"subject"`
	CreatedAt time.Time  `json:"createdAt"`
	EditedAt  *time.Time `json:"editedAt"`
	Message   string     `json:"message"`
}

type Subject struct {
	ID        string     `json:"id"`
	Author    *User      `json:"author"`
	Responses []Post     `json:"responses"`
	CreatedAt time.Time  `json:"createdAt"`
	EditedAt  *time.Time `json:"editedAt"`
	Message   string     `json:"message"`
	Title     string     `json:"title"`
}

type Token struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func fromUser(u *models.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:        u.ID.Hex(),
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
		Posts:     []Post{},
		Subjects:  []Subject{},
	}
}

func fromPopulatedUser(u *models.PopulatedUser) *User {
	posts := make([]Post, 0, len(u.Posts))
	for i := range u.Posts {
		posts = append(posts, *fromPost(&u.Posts[i]))
	}
	subjects := make([]Subject, 0, len(u.Subjects))
	for i := range u.Subjects {
		subjects = append(subjects, *fromSubject(&u.Subjects[i]))
	}
	return &User{
		ID:        u.ID.Hex(),
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
		Posts:     posts,
		Subjects:  subjects,
	}
}

// hexID keeps an absent back-reference absent: a post with no parent subject
// resolves to a null subject, not an empty string.
func hexID(id *primitive.ObjectID) *string {
	if id == nil {
		return nil
	}
	hex := id.Hex()
	return &hex
}

func fromPost(p *models.Post) *Post {
	return &Post{
		ID:        p.ID.Hex(),
		Subject:   hexID(p.Subject),
		CreatedAt: p.CreatedAt,
		EditedAt:  p.EditedAt,
		Message:   p.Message,
	}
}

func fromPopulatedPost(p *models.PopulatedPost) *Post {
	return &Post{
		ID:        p.ID.Hex(),
		Author:    fromUser(p.Author),
		Subject:   hexID(p.Subject),
		CreatedAt: p.CreatedAt,
		EditedAt:  p.EditedAt,
		Message:   p.Message,
	}
}

func fromSubject(s *models.Subject) *Subject {
	return &Subject{
		ID:        s.ID.Hex(),
		Responses: []Post{},
		CreatedAt: s.CreatedAt,
		EditedAt:  s.EditedAt,
		Message:   s.Message,
		Title:     s.Title,
	}
}

func fromPopulatedSubject(s *models.PopulatedSubject) *Subject {
	responses := make([]Post, 0, len(s.Responses))
	for i := range s.Responses {
		responses = append(responses, *fromPopulatedPost(&s.Responses[i]))
	}
	return &Subject{
		ID:        s.ID.Hex(),
		Author:    fromUser(s.Author),
		Responses: responses,
		CreatedAt: s.CreatedAt,
		EditedAt:  s.EditedAt,
		Message:   s.Message,
		Title:     s.Title,
	}
}
