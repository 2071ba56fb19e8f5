package repo_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/stocksync/internal/db"
	"github.com/rogerio-castellano/stocksync/internal/redissvc"
	"github.com/rogerio-castellano/stocksync/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPostgresStore needs a live database and Redis. Each test runs under its
// own app id so runs never see each other's documents.
func newPostgresStore(t *testing.T) *repo.PostgresDocumentStore {
	t.Helper()
	dbURL := os.Getenv("STOCKSYNC_TEST_DATABASE_URL")
	redisAddr := os.Getenv("STOCKSYNC_TEST_REDIS_ADDR")
	if dbURL == "" || redisAddr == "" {
		t.Skip("STOCKSYNC_TEST_DATABASE_URL and STOCKSYNC_TEST_REDIS_ADDR are not set")
	}

	conn, err := db.Connect(dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	rdb, err := redissvc.Connect(context.Background(), redisAddr)
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	store := repo.NewPostgresDocumentStore(conn, redissvc.NewChangeFeed(rdb, "stocksync-test:"), "it-"+uuid.NewString())
	require.NoError(t, store.EnsureSchema(context.Background()))
	return store
}

func TestPostgresStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store := newPostgresStore(t)

	id, err := store.Create(ctx, repo.ProductsCollection, "alice", map[string]any{
		"name":        "Widget",
		"stock":       10,
		"lastUpdated": repo.ServerTimestamp,
	})
	require.NoError(t, err)

	doc, err := store.Get(ctx, repo.ProductsCollection, "alice", id)
	require.NoError(t, err)
	p, err := repo.DecodeProduct(doc)
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, 10, p.Stock)
	assert.False(t, p.LastUpdated.IsZero())

	require.NoError(t, store.Update(ctx, repo.ProductsCollection, "alice", id, map[string]any{"stock": 3}))
	doc, err = store.Get(ctx, repo.ProductsCollection, "alice", id)
	require.NoError(t, err)
	p, err = repo.DecodeProduct(doc)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)
	assert.Equal(t, "Widget", p.Name, "updates merge into the stored fields")

	_, err = store.Get(ctx, repo.ProductsCollection, "bob", id)
	assert.ErrorIs(t, err, repo.ErrDocumentNotFound)

	require.NoError(t, store.Delete(ctx, repo.ProductsCollection, "alice", id))
	assert.ErrorIs(t, store.Delete(ctx, repo.ProductsCollection, "alice", id), repo.ErrDocumentNotFound)
	assert.ErrorIs(t, store.Update(ctx, repo.ProductsCollection, "alice", id, map[string]any{"stock": 1}), repo.ErrDocumentNotFound)
}

func TestPostgresStore_SubscribeFollowsWrites(t *testing.T) {
	ctx := context.Background()
	store := newPostgresStore(t)

	var mu sync.Mutex
	var latest []repo.Document
	cancel, err := store.Subscribe(ctx, repo.OrdersCollection, "alice", func(docs []repo.Document) {
		mu.Lock()
		defer mu.Unlock()
		latest = docs
	}, func(err error) {
		t.Errorf("unexpected subscription error: %v", err)
	})
	require.NoError(t, err)
	defer cancel()

	_, err = store.Create(ctx, repo.OrdersCollection, "alice", map[string]any{"status": "pending"})
	require.NoError(t, err)
	_, err = store.Create(ctx, repo.OrdersCollection, "bob", map[string]any{"status": "pending"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(latest) == 1
	}, 5*time.Second, 20*time.Millisecond)
}

func TestPostgresStore_MissingTenant(t *testing.T) {
	store := newPostgresStore(t)

	_, err := store.List(context.Background(), repo.ProductsCollection, "")
	assert.True(t, errors.Is(err, repo.ErrMissingTenant))
}
