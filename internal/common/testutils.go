package common

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

// TestDB starts a throwaway MongoDB container, applies the migrations and returns a handle on a
// fresh database. source changes according to the caller location relative to the migrations
// folder and it should be in the format of "file://../../migrations".
func TestDB(source string, t *testing.T) *mongo.Database {
	ctx := context.Background()

	c, err := mongodb.Run(ctx, "mongo:7.0")
	if err != nil {
		t.Fatalf("could not start mongodb container: %v", err)
	}

	connURL, err := c.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	const name = "testdb"

	if err := Migrate(source, connURL, name); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	client, err := NewDB(connURL, 10, 0, 0)
	if err != nil {
		t.Fatalf("could not connect to mongodb: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Database(name).Drop(ctx)
		_ = CloseDB(client)
		_ = c.Terminate(ctx)
	})

	return client.Database(name)
}
