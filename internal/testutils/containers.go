// Package testutils starts throwaway MongoDB and RabbitMQ containers for integration tests.
package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"

	"github.com/sushihentaime/blogdocs/internal/common"
)

// SkipIfShort skips container-backed tests under `go test -short`.
func SkipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
}

func TestRabbitMQ(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := rabbitmq.Run(ctx, "rabbitmq:3.12.11-management-alpine", rabbitmq.WithAdminUsername("guest"), rabbitmq.WithAdminPassword("guest"))
	if err != nil {
		t.Fatalf("could not start rabbitmq container: %v", err)
	}

	connURL, err := container.AmqpURL(ctx)
	if err != nil {
		t.Fatalf("could not get rabbitmq connection URL: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("could not terminate container: %v", err)
		}
	})

	return connURL
}

// TestDB starts a MongoDB container and returns an open handle on database "testdb".
func TestDB(t *testing.T) *common.DB {
	t.Helper()
	ctx := context.Background()

	c, err := mongodb.Run(ctx, "mongo:7.0.12")
	if err != nil {
		t.Fatalf("could not start mongodb container: %v", err)
	}

	connURL, err := c.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	db, err := common.NewDB(connURL, "testdb", 10, 10*time.Second)
	if err != nil {
		t.Fatalf("could not open database: %v", err)
	}

	t.Cleanup(func() {
		common.CloseDB(db)
		c.Terminate(ctx)
	})

	return db
}
