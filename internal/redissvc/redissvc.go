package redissvc

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrFeedClosed is reported when the pub/sub channel closes under a listener.
var ErrFeedClosed = errors.New("change feed closed")

// Connect opens a Redis client and checks it answers.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	return rdb, nil
}

// ChangeFeed publishes collection change signals over Redis pub/sub so every
// process serving a tenant re-reads its snapshot after a write.
type ChangeFeed struct {
	rdb    *redis.Client
	prefix string
}

func NewChangeFeed(rdb *redis.Client, prefix string) *ChangeFeed {
	return &ChangeFeed{rdb: rdb, prefix: prefix}
}

func (f *ChangeFeed) channel(name string) string {
	return f.prefix + name
}

func (f *ChangeFeed) Publish(ctx context.Context, channel string) error {
	return f.rdb.Publish(ctx, f.channel(channel), time.Now().UTC().Format(time.RFC3339Nano)).Err()
}

// Listen calls onChange for every message on the channel until the returned
// stop function is called.
func (f *ChangeFeed) Listen(ctx context.Context, channel string, onChange func(), onError func(error)) (func(), error) {
	ps := f.rdb.Subscribe(ctx, f.channel(channel))
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, err
	}

	messages := ps.Channel()
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case _, ok := <-messages:
				if !ok {
					select {
					case <-done:
					default:
						onError(ErrFeedClosed)
					}
					return
				}
				onChange()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			ps.Close()
		})
	}, nil
}
