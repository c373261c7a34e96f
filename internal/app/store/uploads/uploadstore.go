// internal/app/store/uploads/uploadstore.go
package uploadstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Upload records an asset the server stored on behalf of a standalone
// upload. A content record may take ownership of it once, by claiming it.
type Upload struct {
	ID        string     `bson:"_id"` // asset id
	URL       string     `bson:"url"`
	Claimed   bool       `bson:"claimed"`
	CreatedAt time.Time  `bson:"created_at"`
	ClaimedAt *time.Time `bson:"claimed_at,omitempty"`
}

// Store tracks standalone uploads.
type Store struct {
	c   *mongo.Collection
	now func() time.Time
}

// New creates an uploads Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("uploads"), now: time.Now}
}

// Record notes a freshly stored asset as unclaimed.
func (s *Store) Record(ctx context.Context, id, url string) error {
	_, err := s.c.InsertOne(ctx, Upload{ID: id, URL: url, CreatedAt: s.now()})
	return err
}

// Get returns the record for id.
func (s *Store) Get(ctx context.Context, id string) (*Upload, error) {
	var u Upload
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Claim marks id as owned by a content record. It reports false when id
// was never issued, was issued for a different URL, or is already claimed.
func (s *Store) Claim(ctx context.Context, id, url string) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "url": url, "claimed": false},
		bson.M{"$set": bson.M{"claimed": true, "claimed_at": s.now()}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

// Unclaim returns ids to the unclaimed pool after a failed content write.
func (s *Store) Unclaim(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"claimed": false}, "$unset": bson.M{"claimed_at": ""}},
	)
	return err
}

// Forget drops the records for ids.
func (s *Store) Forget(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

// Stale lists unclaimed uploads created before the cutoff, oldest first.
func (s *Store) Stale(ctx context.Context, before time.Time, limit int64) ([]string, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetProjection(bson.M{"_id": 1})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{"claimed": false, "created_at": bson.M{"$lt": before}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var u Upload
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		ids = append(ids, u.ID)
	}
	return ids, cur.Err()
}

// Take removes the record for id if it is still unclaimed, reporting
// whether it did. A taken upload may be deleted from storage.
func (s *Store) Take(ctx context.Context, id string) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "claimed": false})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}
