// Package testutil provides shared fixtures for package tests: a throwaway
// MongoDB database per test, an in-memory asset store, and HTTP helpers.
package testutil

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/stratatour/internal/app/system/indexes"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// TestDBURI is the default MongoDB connection string for tests.
	// STRATATOUR_TEST_MONGO_URI overrides it.
	TestDBURI = "mongodb://localhost:27017"
	// TestDBName prefixes every per-test database.
	TestDBName = "stratatour_test"

	// MongoDB caps database names at 63 bytes.
	maxDBName = 63
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
)

// sharedClient connects once per test binary through the same pooled
// connector production uses.
func sharedClient() (*mongo.Client, error) {
	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		uri := TestDBURI
		if v := os.Getenv("STRATATOUR_TEST_MONGO_URI"); v != "" {
			uri = v
		}

		pool := wafflemongo.DefaultPoolConfig()
		pool.MaxPoolSize = 200 // parallel packages
		client, clientErr = wafflemongo.ConnectWithPool(ctx, uri, TestDBName, pool)
	})
	return client, clientErr
}

// SetupTestDB returns an empty database for t with the production indexes in
// place. It is dropped when t finishes.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	c, err := sharedClient()
	if err != nil {
		t.Fatalf("connect to test MongoDB (set STRATATOUR_TEST_MONGO_URI): %v", err)
	}

	db := c.Database(dbNameFor(t.Name()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Drop(ctx); err != nil {
		t.Fatalf("drop stale test database: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("warning: drop test database on cleanup: %v", err)
		}
	})

	return db
}

// dbNameFor maps a test name onto a legal, unique database name. Long names
// are truncated and suffixed with a hash of the full name so subtests that
// share a prefix do not collide.
func dbNameFor(testName string) string {
	var b strings.Builder
	for _, c := range testName {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			b.WriteRune(c)
		default:
			b.WriteByte('_')
		}
	}
	name := TestDBName + "_" + b.String()
	if len(name) <= maxDBName {
		return name
	}
	h := fnv.New32a()
	h.Write([]byte(testName))
	suffix := fmt.Sprintf("_%08x", h.Sum32())
	return name[:maxDBName-len(suffix)] + suffix
}

// TestContext returns a context with a reasonable timeout for test operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
