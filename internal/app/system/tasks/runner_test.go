package tasks_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	ratelimitstore "github.com/dalemusser/stratatour/internal/app/store/ratelimit"
	uploadstore "github.com/dalemusser/stratatour/internal/app/store/uploads"
	"github.com/dalemusser/stratatour/internal/app/system/assets"
	"github.com/dalemusser/stratatour/internal/app/system/ratelimit"
	"github.com/dalemusser/stratatour/internal/app/system/tasks"
	"github.com/dalemusser/stratatour/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestRunner_StartAndStop(t *testing.T) {
	runner := tasks.New(zap.NewNop())

	ran := make(chan struct{}, 1)
	runner.Register(tasks.Job{
		Name:     "test-job",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			select {
			case ran <- struct{}{}:
			default:
			}
			return nil
		},
	})
	runner.Start()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := runner.Stop(ctx); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestRunner_StopWithTimeout(t *testing.T) {
	runner := tasks.New(zap.NewNop())

	inJob := make(chan struct{})
	runner.Register(tasks.Job{
		Name:     "slow-job",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			close(inJob)
			// Ignores ctx on purpose.
			time.Sleep(2 * time.Second)
			return nil
		},
	})
	runner.Start()
	<-inJob

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := runner.Stop(ctx); err != context.DeadlineExceeded {
		t.Errorf("Stop() error = %v, want DeadlineExceeded", err)
	}
}

func TestRunner_CancelsJobContext(t *testing.T) {
	runner := tasks.New(zap.NewNop())

	cancelled := make(chan struct{})
	runner.Register(tasks.Job{
		Name:     "context-aware-job",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			close(cancelled)
			return ctx.Err()
		},
	})
	runner.Start()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := runner.Stop(ctx); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Error("job context was not cancelled")
	}
}

func TestRunner_Register_IgnoresInvalidJobs(t *testing.T) {
	runner := tasks.New(zap.NewNop())
	runner.Register(tasks.Job{Name: "no-interval", Run: func(context.Context) error { return nil }})
	runner.Register(tasks.Job{Name: "no-body", Interval: time.Minute})
	if runner.Len() != 0 {
		t.Errorf("Len() = %d, want 0", runner.Len())
	}
}

func TestRunner_RunOnce(t *testing.T) {
	runner := tasks.New(zap.NewNop())

	var count atomic.Int32
	runner.Register(tasks.Job{
		Name:     "manual-job",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			count.Add(1)
			return nil
		},
	})

	if err := runner.RunOnce(context.Background(), "manual-job"); err != nil {
		t.Errorf("RunOnce() error = %v", err)
	}
	if count.Load() != 1 {
		t.Errorf("job ran %d times, want 1", count.Load())
	}
	if err := runner.RunOnce(context.Background(), "nonexistent-job"); err != nil {
		t.Errorf("RunOnce(unknown) error = %v, want nil", err)
	}
}

func TestLimiterSweepJob_KeepsActiveVisitors(t *testing.T) {
	l := ratelimit.PerMinute(10)
	l.Allow("203.0.113.7")

	job := tasks.LimiterSweepJob(l, zap.NewNop())
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want active visitor kept", l.Len())
	}
}

func TestLockoutPruneJob(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Zero window: every unlocked record is already closed.
	store := ratelimitstore.New(db, 5, 0, time.Minute)
	store.RecordFailure(ctx, "admin@example.com")
	time.Sleep(5 * time.Millisecond)

	job := tasks.LockoutPruneJob(store, zap.NewNop())
	if err := job.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	a, err := store.GetAttempt(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("GetAttempt() error = %v", err)
	}
	if a != nil {
		t.Errorf("record not pruned: %+v", a)
	}
}

func TestStaleUploadSweepJob(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mem := testutil.NewMemoryAssets()
	am := assets.New(mem, zap.NewNop())
	ledger := uploadstore.New(db)
	am.UseLedger(ledger)

	fresh, err := am.Issue(ctx, assets.GenericImage, assets.FromBytes("new.png", "image/png", testutil.PNG()))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	old, err := am.Issue(ctx, assets.GenericImage, assets.FromBytes("old.png", "image/png", testutil.PNG()))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := db.Collection("uploads").UpdateOne(ctx,
		bson.M{"_id": old.AssetID},
		bson.M{"$set": bson.M{"created_at": time.Now().Add(-2 * tasks.StaleUploadAge)}},
	); err != nil {
		t.Fatalf("UpdateOne() error = %v", err)
	}

	if err := tasks.StaleUploadSweepJob(am).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if mem.Has(old.AssetID) {
		t.Errorf("stale upload %q still stored", old.AssetID)
	}
	if _, err := ledger.Get(ctx, old.AssetID); err != mongo.ErrNoDocuments {
		t.Errorf("ledger Get(old) error = %v, want ErrNoDocuments", err)
	}
	if !mem.Has(fresh.AssetID) {
		t.Errorf("fresh upload %q was released", fresh.AssetID)
	}
}
