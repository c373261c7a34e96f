// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the backend connections shared by every feature.
//
// It is created once in ConnectDB and passed to EnsureSchema, Startup,
// BuildHandler and Shutdown. Handlers reach the database and the asset
// store only through this struct; there are no package-level connection
// globals. Shutdown is responsible for closing what ConnectDB opened.
type DBDeps struct {
	// MongoDB client and database (the content store)
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// FileStorage holds hero media and content images (the asset store)
	FileStorage storage.Store
}
