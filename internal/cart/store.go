package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/mataam/internal/cache"
	"github.com/example/mataam/internal/logging"
)

const keyPrefix = "cart:"

// Store persists carts as JSON in a key-value cache. Every change is written
// back immediately.
type Store struct {
	kv  cache.Cache
	ttl time.Duration
	mu  sync.Mutex
	log *logrus.Entry
}

// NewStore keeps carts for ttl after their last change.
func NewStore(kv cache.Cache, ttl time.Duration) *Store {
	return &Store{kv: kv, ttl: ttl, log: logging.For("cart")}
}

// Load returns the stored cart, or an empty cart when id is empty, unknown or
// holds data that cannot be decoded.
func (s *Store) Load(ctx context.Context, id string) (*Cart, error) {
	if id == "" {
		return New(), nil
	}

	raw, ok, err := s.kv.Get(ctx, keyPrefix+id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Cart{ID: id, Lines: []Line{}}, nil
	}

	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.log.WithError(err).WithField("cart_id", id).Warn("discarding malformed cart")
		return &Cart{ID: id, Lines: []Line{}}, nil
	}
	if lines == nil {
		lines = []Line{}
	}
	return &Cart{ID: id, Lines: lines}, nil
}

func (s *Store) save(ctx context.Context, c *Cart) error {
	raw, err := json.Marshal(c.Lines)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keyPrefix+c.ID, raw, s.ttl)
}

// Update loads the cart, applies change and saves the result.
func (s *Store) Update(ctx context.Context, id string, change func(*Cart)) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	change(c)
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
