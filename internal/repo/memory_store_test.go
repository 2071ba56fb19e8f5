package repo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTenant = "tenant-a"

// recorder collects snapshots delivered to a subscription.
type recorder struct {
	mu        sync.Mutex
	snapshots [][]Document
	errs      []error
}

func (r *recorder) onSnapshot(docs []Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, docs)
}

func (r *recorder) onError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recorder) last() []Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snapshots) == 0 {
		return nil
	}
	return r.snapshots[len(r.snapshots)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snapshots)
}

func (r *recorder) errCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs)
}

func TestInMemoryDocumentStore_CreateGetListUpdateDelete(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryDocumentStore("app")

	id, err := s.Create(ctx, ProductsCollection, testTenant, map[string]any{"name": "Widget", "stock": 10})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := s.Get(ctx, ProductsCollection, testTenant, id)
	require.NoError(t, err)
	assert.Equal(t, "Widget", doc.Fields["name"])

	require.NoError(t, s.Update(ctx, ProductsCollection, testTenant, id, map[string]any{"stock": 3}))
	doc, err = s.Get(ctx, ProductsCollection, testTenant, id)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Fields["stock"])
	assert.Equal(t, "Widget", doc.Fields["name"], "update merges fields")

	docs, err := s.List(ctx, ProductsCollection, testTenant)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	require.NoError(t, s.Delete(ctx, ProductsCollection, testTenant, id))
	_, err = s.Get(ctx, ProductsCollection, testTenant, id)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestInMemoryDocumentStore_UnknownIDs(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryDocumentStore("app")

	assert.ErrorIs(t, s.Update(ctx, OrdersCollection, testTenant, "missing", map[string]any{"status": "shipped"}), ErrDocumentNotFound)
	assert.ErrorIs(t, s.Delete(ctx, OrdersCollection, testTenant, "missing"), ErrDocumentNotFound)

	docs, err := s.List(ctx, OrdersCollection, testTenant)
	require.NoError(t, err)
	assert.Empty(t, docs, "a failed update must not create a document")
}

func TestInMemoryDocumentStore_TenantsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryDocumentStore("app")

	id, err := s.Create(ctx, ProductsCollection, "alice", map[string]any{"name": "A"})
	require.NoError(t, err)

	_, err = s.Get(ctx, ProductsCollection, "bob", id)
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	docs, err := s.List(ctx, ProductsCollection, "bob")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestInMemoryDocumentStore_MissingTenant(t *testing.T) {
	s := NewInMemoryDocumentStore("app")
	_, err := s.Create(context.Background(), ProductsCollection, "", map[string]any{})
	assert.ErrorIs(t, err, ErrMissingTenant)

	_, err = s.Subscribe(context.Background(), ProductsCollection, "", func([]Document) {}, nil)
	assert.ErrorIs(t, err, ErrMissingTenant)
}

func TestInMemoryDocumentStore_ServerTimestampsIncrease(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryDocumentStore("app")
	frozen := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return frozen })

	var stamps []time.Time
	for range 3 {
		id, err := s.Create(ctx, NotificationsCollection, testTenant, map[string]any{
			"timestamp": ServerTimestamp,
		})
		require.NoError(t, err)
		doc, err := s.Get(ctx, NotificationsCollection, testTenant, id)
		require.NoError(t, err)
		ts, ok := doc.Fields["timestamp"].(time.Time)
		require.True(t, ok, "placeholder must be replaced by a time")
		stamps = append(stamps, ts)
	}

	for i := 1; i < len(stamps); i++ {
		assert.True(t, stamps[i].After(stamps[i-1]), "stamp %d not after stamp %d", i, i-1)
	}
}

func TestInMemoryDocumentStore_OneTimestampPerWrite(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryDocumentStore("app")

	id, err := s.Create(ctx, OrdersCollection, testTenant, map[string]any{
		"orderDate":        ServerTimestamp,
		"lastStatusUpdate": ServerTimestamp,
	})
	require.NoError(t, err)

	doc, err := s.Get(ctx, OrdersCollection, testTenant, id)
	require.NoError(t, err)
	assert.Equal(t, doc.Fields["orderDate"], doc.Fields["lastStatusUpdate"])
}

func TestInMemoryDocumentStore_IDsAreUnique(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryDocumentStore("app")

	seen := map[string]bool{}
	for range 100 {
		id, err := s.Create(ctx, OrdersCollection, testTenant, map[string]any{})
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestInMemoryDocumentStore_SubscribeDeliversCurrentAndLaterSnapshots(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryDocumentStore("app")
	_, err := s.Create(ctx, ProductsCollection, testTenant, map[string]any{"name": "first"})
	require.NoError(t, err)

	rec := &recorder{}
	cancel, err := s.Subscribe(ctx, ProductsCollection, testTenant, rec.onSnapshot, rec.onError)
	require.NoError(t, err)
	defer cancel()

	require.Eventually(t, func() bool { return len(rec.last()) == 1 }, time.Second, 5*time.Millisecond)

	_, err = s.Create(ctx, ProductsCollection, testTenant, map[string]any{"name": "second"})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(rec.last()) == 2 }, time.Second, 5*time.Millisecond)
	last := rec.last()
	assert.Equal(t, "first", last[0].Fields["name"])
	assert.Equal(t, "second", last[1].Fields["name"])
}

func TestInMemoryDocumentStore_CancelStopsDelivery(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryDocumentStore("app")

	rec := &recorder{}
	cancel, err := s.Subscribe(ctx, ProductsCollection, testTenant, rec.onSnapshot, rec.onError)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	cancel() // idempotent

	_, err = s.Create(ctx, ProductsCollection, testTenant, map[string]any{"name": "late"})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
}

func TestInMemoryDocumentStore_DisruptReportsError(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryDocumentStore("app")

	rec := &recorder{}
	cancel, err := s.Subscribe(ctx, OrdersCollection, testTenant, rec.onSnapshot, rec.onError)
	require.NoError(t, err)
	defer cancel()

	s.Disrupt(OrdersCollection, testTenant, errors.New("connection reset"))
	require.Eventually(t, func() bool { return rec.errCount() == 1 }, time.Second, 5*time.Millisecond)
}

func TestInMemoryDocumentStore_FailWith(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryDocumentStore("app")
	boom := errors.New("unavailable")

	s.FailWith(boom)
	_, err := s.List(ctx, ProductsCollection, testTenant)
	assert.ErrorIs(t, err, boom)

	s.FailWith(nil)
	_, err = s.List(ctx, ProductsCollection, testTenant)
	assert.NoError(t, err)
}

func TestInMemoryDocumentStore_ClearRepublishes(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryDocumentStore("app")
	_, err := s.Create(ctx, ProductsCollection, testTenant, map[string]any{"name": "x"})
	require.NoError(t, err)

	rec := &recorder{}
	cancel, err := s.Subscribe(ctx, ProductsCollection, testTenant, rec.onSnapshot, rec.onError)
	require.NoError(t, err)
	defer cancel()
	require.Eventually(t, func() bool { return len(rec.last()) == 1 }, time.Second, 5*time.Millisecond)

	s.Clear()
	require.Eventually(t, func() bool { return rec.last() != nil && len(rec.last()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestCollectionPath(t *testing.T) {
	assert.Equal(t, "artifacts/app/users/u1/products", CollectionPath("app", "u1", ProductsCollection))
}
