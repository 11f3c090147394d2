package common

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DB is the process-wide MongoDB handle. It is opened once in main and closed on shutdown.
type DB struct {
	client *mongo.Client
	name   string
}

func NewDB(URI, name string, maxPoolSize uint64, connectTimeout time.Duration) (*DB, error) {
	opts := options.Client().
		ApplyURI(URI).
		SetMaxPoolSize(maxPoolSize).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout)

	return connectDB(opts, name, connectTimeout)
}

// connectDB connects to the server and pings the primary before handing the client out
func connectDB(opts *options.ClientOptions, name string, timeout time.Duration) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("could not connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("could not ping mongodb: %w", err)
	}

	return &DB{client: client, name: name}, nil
}

// Collection returns a handle on the named collection of the configured database.
func (db *DB) Collection(name string) *mongo.Collection {
	return db.client.Database(db.name).Collection(name)
}

func (db *DB) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, readpref.Primary())
}

// CloseDB disconnects the client
func CloseDB(db *DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return db.client.Disconnect(ctx)
}
