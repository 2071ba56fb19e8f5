package repo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryCollection struct {
	order []string
	docs  map[string]map[string]any
}

// InMemoryDocumentStore is an in-memory implementation of DocumentStore.
type InMemoryDocumentStore struct {
	appID string

	mu          sync.Mutex
	collections map[string]*memoryCollection
	subscribers map[string]map[int]*subscription
	nextSubID   int
	failure     error

	now       func() time.Time
	lastStamp time.Time
}

// NewInMemoryDocumentStore creates a new instance of InMemoryDocumentStore.
func NewInMemoryDocumentStore(appID string) *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		appID:       appID,
		collections: map[string]*memoryCollection{},
		subscribers: map[string]map[int]*subscription{},
		now:         time.Now,
	}
}

// SetClock replaces the wall clock used for server timestamps.
func (s *InMemoryDocumentStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FailWith makes every following call fail with err until it is called with nil.
func (s *InMemoryDocumentStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

// Disrupt delivers err to every subscriber of the collection.
func (s *InMemoryDocumentStore) Disrupt(collection, tenant string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subscribers[CollectionPath(s.appID, tenant, collection)] {
		sub.fail(err)
	}
}

// stamp returns a strictly increasing timestamp so ordering by server time
// is total even when the wall clock does not move between writes.
func (s *InMemoryDocumentStore) stamp() time.Time {
	t := s.now().UTC()
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(time.Nanosecond)
	}
	s.lastStamp = t
	return t
}

func (s *InMemoryDocumentStore) resolve(fields map[string]any) map[string]any {
	out := copyFields(fields)
	var ts time.Time
	for k, v := range out {
		if isServerTimestamp(v) {
			if ts.IsZero() {
				ts = s.stamp()
			}
			out[k] = ts
		}
	}
	return out
}

func (s *InMemoryDocumentStore) collection(path string) *memoryCollection {
	c, ok := s.collections[path]
	if !ok {
		c = &memoryCollection{docs: map[string]map[string]any{}}
		s.collections[path] = c
	}
	return c
}

func (s *InMemoryDocumentStore) snapshot(path string) []Document {
	c, ok := s.collections[path]
	if !ok {
		return []Document{}
	}
	docs := make([]Document, 0, len(c.order))
	for _, id := range c.order {
		docs = append(docs, Document{ID: id, Fields: copyFields(c.docs[id])})
	}
	return docs
}

func (s *InMemoryDocumentStore) publish(path string) {
	subs := s.subscribers[path]
	if len(subs) == 0 {
		return
	}
	snap := s.snapshot(path)
	for _, sub := range subs {
		sub.offer(snap)
	}
}

func (s *InMemoryDocumentStore) check(ctx context.Context, tenant string) error {
	if tenant == "" {
		return ErrMissingTenant
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.failure
}

// Create adds a new document and returns its storage-assigned id.
func (s *InMemoryDocumentStore) Create(ctx context.Context, collection, tenant string, fields map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, tenant); err != nil {
		return "", err
	}

	path := CollectionPath(s.appID, tenant, collection)
	c := s.collection(path)
	id := uuid.NewString()
	c.docs[id] = s.resolve(fields)
	c.order = append(c.order, id)
	s.publish(path)
	return id, nil
}

// Get retrieves a document by its id.
func (s *InMemoryDocumentStore) Get(ctx context.Context, collection, tenant, id string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, tenant); err != nil {
		return Document{}, err
	}

	c, ok := s.collections[CollectionPath(s.appID, tenant, collection)]
	if !ok {
		return Document{}, ErrDocumentNotFound
	}
	fields, ok := c.docs[id]
	if !ok {
		return Document{}, ErrDocumentNotFound
	}
	return Document{ID: id, Fields: copyFields(fields)}, nil
}

// List returns every document of the collection in creation order.
func (s *InMemoryDocumentStore) List(ctx context.Context, collection, tenant string) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, tenant); err != nil {
		return nil, err
	}
	return s.snapshot(CollectionPath(s.appID, tenant, collection)), nil
}

// Update merges fields into an existing document.
func (s *InMemoryDocumentStore) Update(ctx context.Context, collection, tenant, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, tenant); err != nil {
		return err
	}

	path := CollectionPath(s.appID, tenant, collection)
	c, ok := s.collections[path]
	if !ok {
		return ErrDocumentNotFound
	}
	current, ok := c.docs[id]
	if !ok {
		return ErrDocumentNotFound
	}
	for k, v := range s.resolve(fields) {
		current[k] = v
	}
	s.publish(path)
	return nil
}

// Delete removes a document by its id.
func (s *InMemoryDocumentStore) Delete(ctx context.Context, collection, tenant, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, tenant); err != nil {
		return err
	}

	path := CollectionPath(s.appID, tenant, collection)
	c, ok := s.collections[path]
	if !ok {
		return ErrDocumentNotFound
	}
	if _, ok := c.docs[id]; !ok {
		return ErrDocumentNotFound
	}
	delete(c.docs, id)
	for i, docID := range c.order {
		if docID == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	s.publish(path)
	return nil
}

// Subscribe registers for full snapshots of the collection. The current
// snapshot is delivered right after registration.
func (s *InMemoryDocumentStore) Subscribe(ctx context.Context, collection, tenant string, onSnapshot SnapshotFunc, onError ErrorFunc) (CancelFunc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, tenant); err != nil {
		return nil, err
	}

	path := CollectionPath(s.appID, tenant, collection)
	sub := newSubscription(onSnapshot, onError)
	s.nextSubID++
	subID := s.nextSubID
	if s.subscribers[path] == nil {
		s.subscribers[path] = map[int]*subscription{}
	}
	s.subscribers[path][subID] = sub
	sub.offer(s.snapshot(path))

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.cancel()
			s.mu.Lock()
			delete(s.subscribers[path], subID)
			s.mu.Unlock()
		})
	}, nil
}

// Clear drops every document and keeps subscriptions registered.
func (s *InMemoryDocumentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections = map[string]*memoryCollection{}
	for path := range s.subscribers {
		s.publish(path)
	}
}
