package config

import (
	"context"
	"log"
	"os"
	"time"

	customerrors "forum/internal/customErrors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Mongo struct {
	Client *mongo.Client
	Db     *mongo.Database
	uri    string
	dbName string
}

func NewMongo() *Mongo {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		log.Fatal("MONGO_URI not defined")
	}

	return &Mongo{
		uri:    uri,
		dbName: GetEnv("MONGO_DB", "forum"),
	}
}

func (m *Mongo) InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.uri))
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		log.Fatal("Error ping to database: ", err)
	}

	m.Client = client
	m.Db = client.Database(m.dbName)

	if err := m.ensureIndexes(ctx); err != nil {
		log.Fatal("Error creating indexes: ", err)
	}

	log.Println("Connection to database successfully!")
}

func (m *Mongo) CloseDB() {
	if m.Client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		log.Println("Error closing database connection: ", err)
		return
	}
	log.Println("Connection to database closed!")
}

func (m *Mongo) Ping(ctx context.Context) error {
	if err := m.Client.Ping(ctx, nil); err != nil {
		return customerrors.ErrDbUnreacheable
	}
	return nil
}

// username and email are unique at the collection level; the service layer
// still pre-checks them to report which one clashed.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	users := m.Db.Collection("users")

	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
