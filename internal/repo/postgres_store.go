package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChangeFeed carries "collection changed" signals between processes.
type ChangeFeed interface {
	Publish(ctx context.Context, channel string) error
	Listen(ctx context.Context, channel string, onChange func(), onError func(error)) (func(), error)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	app_id     TEXT        NOT NULL,
	tenant_id  TEXT        NOT NULL,
	collection TEXT        NOT NULL,
	id         TEXT        NOT NULL,
	data       JSONB       NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
	PRIMARY KEY (app_id, tenant_id, collection, id)
)`

// serverTimestamps builds a JSONB object mapping each listed key to the
// database clock, so "set by storage" fields never carry client time.
const serverTimestamps = `(SELECT COALESCE(jsonb_object_agg(k, to_jsonb(clock_timestamp())), '{}'::jsonb) FROM unnest($6::text[]) AS k)`

const queryTimeout = 3 * time.Second

type PostgresDocumentStore struct {
	db    *sql.DB
	feed  ChangeFeed
	appID string
}

func NewPostgresDocumentStore(db *sql.DB, feed ChangeFeed, appID string) *PostgresDocumentStore {
	return &PostgresDocumentStore{db: db, feed: feed, appID: appID}
}

// EnsureSchema creates the documents table when it does not exist yet.
func (r *PostgresDocumentStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	return nil
}

// splitFields separates plain values from server timestamp placeholders.
func splitFields(fields map[string]any) ([]byte, []string, error) {
	plain := make(map[string]any, len(fields))
	var stamps []string
	for k, v := range fields {
		if isServerTimestamp(v) {
			stamps = append(stamps, k)
			continue
		}
		plain[k] = v
	}
	data, err := json.Marshal(plain)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode fields: %w", err)
	}
	if stamps == nil {
		stamps = []string{}
	}
	return data, stamps, nil
}

func (r *PostgresDocumentStore) Create(ctx context.Context, collection, tenant string, fields map[string]any) (string, error) {
	if tenant == "" {
		return "", ErrMissingTenant
	}
	data, stamps, err := splitFields(fields)
	if err != nil {
		return "", err
	}

	query := `INSERT INTO documents (app_id, tenant_id, collection, id, data)
		VALUES ($1, $2, $3, $4, $5::jsonb || ` + serverTimestamps + `)`
	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	id := uuid.NewString()
	if _, err := r.db.ExecContext(qctx, query, r.appID, tenant, collection, id, string(data), stamps); err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}
	r.notify(ctx, collection, tenant)
	return id, nil
}

func (r *PostgresDocumentStore) Get(ctx context.Context, collection, tenant, id string) (Document, error) {
	if tenant == "" {
		return Document{}, ErrMissingTenant
	}
	query := `SELECT id, data FROM documents WHERE app_id = $1 AND tenant_id = $2 AND collection = $3 AND id = $4`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var docID string
	var raw []byte
	err := r.db.QueryRowContext(ctx, query, r.appID, tenant, collection, id).Scan(&docID, &raw)
	if err == sql.ErrNoRows {
		return Document{}, ErrDocumentNotFound
	}
	if err != nil {
		return Document{}, err
	}
	return toDocument(docID, raw)
}

func (r *PostgresDocumentStore) List(ctx context.Context, collection, tenant string) ([]Document, error) {
	if tenant == "" {
		return nil, ErrMissingTenant
	}
	query := `SELECT id, data FROM documents
		WHERE app_id = $1 AND tenant_id = $2 AND collection = $3
		ORDER BY created_at, id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, r.appID, tenant, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var docID string
		var raw []byte
		if err := rows.Scan(&docID, &raw); err != nil {
			return nil, err
		}
		doc, err := toDocument(docID, raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *PostgresDocumentStore) Update(ctx context.Context, collection, tenant, id string, fields map[string]any) error {
	if tenant == "" {
		return ErrMissingTenant
	}
	data, stamps, err := splitFields(fields)
	if err != nil {
		return err
	}

	query := `UPDATE documents SET data = data || $5::jsonb || ` + serverTimestamps + `, updated_at = clock_timestamp()
		WHERE app_id = $1 AND tenant_id = $2 AND collection = $3 AND id = $4`
	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(qctx, query, r.appID, tenant, collection, id, string(data), stamps)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrDocumentNotFound
	}
	r.notify(ctx, collection, tenant)
	return nil
}

func (r *PostgresDocumentStore) Delete(ctx context.Context, collection, tenant, id string) error {
	if tenant == "" {
		return ErrMissingTenant
	}
	query := `DELETE FROM documents WHERE app_id = $1 AND tenant_id = $2 AND collection = $3 AND id = $4`
	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(qctx, query, r.appID, tenant, collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrDocumentNotFound
	}
	r.notify(ctx, collection, tenant)
	return nil
}

// Subscribe loads the current snapshot, then reloads it every time the change
// feed reports a write to the collection.
func (r *PostgresDocumentStore) Subscribe(ctx context.Context, collection, tenant string, onSnapshot SnapshotFunc, onError ErrorFunc) (CancelFunc, error) {
	if tenant == "" {
		return nil, ErrMissingTenant
	}
	sub := newSubscription(onSnapshot, onError)

	reload := func() {
		docs, err := r.List(context.Background(), collection, tenant)
		if err != nil {
			sub.fail(fmt.Errorf("failed to reload %s: %w", collection, err))
			return
		}
		sub.offer(docs)
	}

	stop, err := r.feed.Listen(ctx, CollectionPath(r.appID, tenant, collection), reload, sub.fail)
	if err != nil {
		sub.cancel()
		return nil, fmt.Errorf("failed to listen for changes: %w", err)
	}
	reload()

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.cancel()
			stop()
		})
	}, nil
}

// notify publishes a change signal. The write already succeeded, so a feed
// failure is logged rather than returned.
func (r *PostgresDocumentStore) notify(ctx context.Context, collection, tenant string) {
	channel := CollectionPath(r.appID, tenant, collection)
	if err := r.feed.Publish(ctx, channel); err != nil {
		zap.L().Warn("failed to publish change", zap.String("channel", channel), zap.Error(err))
	}
}

func toDocument(id string, raw []byte) (Document, error) {
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Document{}, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	return Document{ID: id, Fields: fields}, nil
}
