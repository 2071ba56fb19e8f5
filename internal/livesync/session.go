package livesync

import (
	"context"
	"errors"
	"sync"

	"github.com/rogerio-castellano/stocksync/internal/models"
	"github.com/rogerio-castellano/stocksync/internal/repo"
	"go.uber.org/zap"
)

// Identity reports who is signed in. An empty subject means nobody is, and
// collection access waits until a subject arrives.
type Identity interface {
	CurrentSubjectID() (string, bool)
	OnIdentityChange(fn func(subject string)) (unregister func())
}

type ProductSource interface {
	Subscribe(ctx context.Context, tenant string, onSnapshot func([]models.Product), onError func(error)) (repo.CancelFunc, error)
}

type OrderSource interface {
	Subscribe(ctx context.Context, tenant string, onSnapshot func([]models.Order), onError func(error)) (repo.CancelFunc, error)
}

type NotificationSource interface {
	Subscribe(ctx context.Context, tenant string, onSnapshot func([]models.Notification), onError func(error)) (repo.CancelFunc, error)
}

// ErrSessionClosed is returned by calls on a closed session.
var ErrSessionClosed = errors.New("session closed")

// Session keeps the three projections of the signed-in tenant current. It
// follows identity changes: a new subject replaces every subscription, a
// sign-out drops them and empties the projections.
type Session struct {
	Products      *Projection[models.Product]
	Orders        *Projection[models.Order]
	Notifications *Projection[models.Notification]

	identity      Identity
	products      ProductSource
	orders        OrderSource
	notifications NotificationSource

	mu         sync.Mutex
	ctx        context.Context
	tenant     string
	generation uint64
	cancels    []repo.CancelFunc
	unregister func()
	onError    func(collection string, err error)
	closed     bool
}

func NewSession(identity Identity, products ProductSource, orders OrderSource, notifications NotificationSource) *Session {
	return &Session{
		Products:      NewProjection[models.Product](),
		Orders:        NewProjection[models.Order](),
		Notifications: NewProjection[models.Notification](),
		identity:      identity,
		products:      products,
		orders:        orders,
		notifications: notifications,
	}
}

// OnError registers a handler for subscription failures. A failed
// subscription stays registered; Resubscribe replaces it.
func (s *Session) OnError(fn func(collection string, err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = fn
}

// Start binds the current subject, if any, and follows identity changes
// until Close.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.ctx = ctx
	s.mu.Unlock()

	unregister := s.identity.OnIdentityChange(func(subject string) {
		if err := s.switchTenant(subject); err != nil {
			zap.L().Error("failed to follow identity change", zap.String("subject", subject), zap.Error(err))
		}
	})

	s.mu.Lock()
	s.unregister = unregister
	s.mu.Unlock()

	subject, _ := s.identity.CurrentSubjectID()
	return s.switchTenant(subject)
}

// Tenant returns the subject currently bound, or "" when signed out.
func (s *Session) Tenant() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tenant
}

// Resubscribe drops and re-creates the subscriptions of the bound tenant.
func (s *Session) Resubscribe() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return s.bindLocked(s.tenant)
}

// Close stops every subscription and stops following identity changes.
// It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.releaseLocked()
	if s.unregister != nil {
		s.unregister()
	}
}

func (s *Session) switchTenant(subject string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if subject == s.tenant && (subject == "" || len(s.cancels) > 0) {
		return nil
	}
	return s.bindLocked(subject)
}

func (s *Session) releaseLocked() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
	s.generation++
}

func (s *Session) bindLocked(subject string) error {
	s.releaseLocked()
	if subject != s.tenant || subject == "" {
		s.Products.Reset()
		s.Orders.Reset()
		s.Notifications.Reset()
	}
	s.tenant = subject
	if subject == "" {
		return nil
	}

	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	gen := s.generation

	cancel, err := s.products.Subscribe(ctx, subject, func(items []models.Product) {
		s.deliver(gen, func() { s.Products.Replace(items) })
	}, s.errorHandler(gen, repo.ProductsCollection))
	if err != nil {
		return err
	}
	s.cancels = append(s.cancels, cancel)

	cancel, err = s.orders.Subscribe(ctx, subject, func(items []models.Order) {
		s.deliver(gen, func() { s.Orders.Replace(items) })
	}, s.errorHandler(gen, repo.OrdersCollection))
	if err != nil {
		s.releaseLocked()
		return err
	}
	s.cancels = append(s.cancels, cancel)

	cancel, err = s.notifications.Subscribe(ctx, subject, func(items []models.Notification) {
		s.deliver(gen, func() { s.Notifications.Replace(items) })
	}, s.errorHandler(gen, repo.NotificationsCollection))
	if err != nil {
		s.releaseLocked()
		return err
	}
	s.cancels = append(s.cancels, cancel)
	return nil
}

// deliver applies a snapshot unless it belongs to subscriptions that were
// replaced in the meantime.
func (s *Session) deliver(gen uint64, apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		return
	}
	apply()
}

func (s *Session) errorHandler(gen uint64, collection string) func(error) {
	return func(err error) {
		s.mu.Lock()
		stale := s.closed || gen != s.generation
		handler := s.onError
		tenant := s.tenant
		s.mu.Unlock()
		if stale {
			return
		}
		zap.L().Warn("subscription degraded",
			zap.String("tenant", tenant),
			zap.String("collection", collection),
			zap.Error(err))
		if handler != nil {
			handler(collection, err)
		}
	}
}
