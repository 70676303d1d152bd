package common

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func NewDB(URI string, maxPoolSize, minPoolSize uint64, maxIdleTime time.Duration) (*mongo.Client, error) {
	return connectDB(URI, maxPoolSize, minPoolSize, maxIdleTime)
}

// connectDB connects to the database and returns the client once the primary answers a ping
func connectDB(URI string, maxPoolSize, minPoolSize uint64, maxIdleTime time.Duration) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(URI).
		SetMaxPoolSize(maxPoolSize).
		SetMinPoolSize(minPoolSize).
		SetMaxConnIdleTime(maxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

// CloseDB closes the database connection
func CloseDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return client.Disconnect(ctx)
}
