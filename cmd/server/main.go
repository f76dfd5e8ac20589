package main

import (
	"log"

	"forum/internal/api"
	authrepo "forum/internal/auth/repository"
	authservice "forum/internal/auth/service"
	"forum/internal/config"
	forumrepo "forum/internal/forum/repository"
	forumservice "forum/internal/forum/service"
	"forum/internal/graph"
)

func main() {
	config.LoadEnv()

	db := config.NewMongo()
	db.InitDB()
	defer db.CloseDB()

	jwt := config.NewJWT()

	users := authrepo.NewUserRepository(db.Db)
	subjects := forumrepo.NewSubjectRepository(db.Db)
	posts := forumrepo.NewPostRepository(db.Db)

	auth := authservice.NewAuthService(users, posts, subjects, jwt)
	subjectService := forumservice.NewSubjectService(subjects, posts, users, auth)
	postService := forumservice.NewPostService(posts, subjects, users, auth)

	schema, err := graph.NewSchema(graph.NewResolver(auth, subjectService, postService))
	if err != nil {
		log.Fatal("Failed to build schema: ", err)
	}

	router := api.SetupRoutes(graph.NewHandler(schema), db)
	server := api.NewServer(":"+config.GetEnv("PORT", "3000"), router)

	server.StartWithGracefulShutdown()
}
