//go:build integration

// Package mongotest starts a disposable single-node MongoDB replica set for
// repository integration tests. Transactions need a replica set, so a plain
// standalone container is not enough.
package mongotest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongoMigration "stayquest/internal/migrations/mongo"
	"stayquest/pkg/client"
	"stayquest/pkg/config"
	"stayquest/pkg/logger"
)

const (
	image          = "mongo"
	tag            = "7.0"
	replicaSet     = "rs0"
	databaseName   = "stayquest_test"
	startupTimeout = 90 * time.Second
)

// Start runs MongoDB in Docker, applies the migrations and returns a Config
// wired to it. The container is purged when the test ends.
func Start(t *testing.T) *config.Config {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	pool.MaxWait = startupTimeout

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: image,
		Tag:        tag,
		Cmd:        []string{"--replSet", replicaSet, "--bind_ip_all"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("start mongo: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("warning: failed to purge mongo container: %v", err)
		}
	})

	uri := fmt.Sprintf("mongodb://%s/?directConnection=true", resource.GetHostPort("27017/tcp"))

	var mc *mongo.Client
	if err := pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return err
		}
		if err := c.Ping(ctx, nil); err != nil {
			_ = c.Disconnect(ctx)
			return err
		}
		mc = c
		return nil
	}); err != nil {
		t.Fatalf("mongo not reachable: %v", err)
	}

	if err := initiateReplicaSet(pool, mc); err != nil {
		t.Fatalf("replica set: %v", err)
	}

	log := logger.Discard()
	cfg := &config.Config{
		MongoURI:          uri,
		MongoDatabaseName: databaseName,
		MongoConnTimeout:  10 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		Log:               log,
		Client:            client.NewClient(),
	}
	cfg.Client.Mongo = mc
	t.Cleanup(func() { cfg.GracefulShutdown() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := mongoMigration.RunMigration(ctx, mc.Database(databaseName), log); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return cfg
}

func initiateReplicaSet(pool *dockertest.Pool, mc *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	initiate := bson.D{{Key: "replSetInitiate", Value: bson.D{
		{Key: "_id", Value: replicaSet},
		{Key: "members", Value: bson.A{bson.D{{Key: "_id", Value: 0}, {Key: "host", Value: "localhost:27017"}}}},
	}}}
	if err := mc.Database("admin").RunCommand(ctx, initiate).Err(); err != nil {
		return fmt.Errorf("replSetInitiate: %w", err)
	}

	return pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		var hello struct {
			IsWritablePrimary bool `bson:"isWritablePrimary"`
		}
		if err := mc.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
			return err
		}
		if !hello.IsWritablePrimary {
			return fmt.Errorf("not primary yet")
		}
		return nil
	})
}
