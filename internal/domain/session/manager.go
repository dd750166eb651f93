// Package session keeps per-browser state: cart, wishlist, applied coupon and checkout.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/coupon"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/domain/wishlist"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Manager hands out session state, restoring it from storage on first use
type Manager struct {
	blobs     storage.Store
	stores    config.StorageConfig
	validator *coupon.Validator
	pricing   *pricing.Engine
	log       logrus.FieldLogger
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*State
	loads    singleflight.Group
}

// NewManager creates a session manager
func NewManager(blobs storage.Store, stores config.StorageConfig, validator *coupon.Validator, engine *pricing.Engine, log logrus.FieldLogger) *Manager {
	return &Manager{
		blobs:     blobs,
		stores:    stores,
		validator: validator,
		pricing:   engine,
		log:       log.WithField("component", "sessions"),
		now:       time.Now,
		sessions:  make(map[string]*State),
	}
}

// Get returns the state for a session id. Concurrent first requests for the
// same id share one restore; later requests refresh the cached cart and
// wishlist from storage.
func (m *Manager) Get(ctx context.Context, id string) (*State, error) {
	m.mu.RLock()
	st, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		// Another process may have written this session since we cached it.
		if err := st.refresh(ctx); err != nil {
			m.log.WithError(err).WithField("session_id", id).Warn("Failed to refresh session, serving cached state")
		}
		st.touch(m.now())
		return st, nil
	}

	v, err, _ := m.loads.Do(id, func() (interface{}, error) {
		m.mu.RLock()
		existing, ok := m.sessions[id]
		m.mu.RUnlock()
		if ok {
			return existing, nil
		}

		st, err := m.restore(ctx, id)
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.sessions[id] = st
		m.mu.Unlock()
		return st, nil
	})
	if err != nil {
		return nil, err
	}

	st = v.(*State)
	st.touch(m.now())
	return st, nil
}

// Len is the number of sessions held in memory
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than maxIdle. Their cart and wishlist
// remain in storage and are restored on the next request.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for id, st := range m.sessions {
		if st.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			dropped++
		}
	}
	if dropped > 0 {
		m.log.WithField("dropped", dropped).Debug("Swept idle sessions")
	}
	return dropped
}

// Run sweeps idle sessions every interval until ctx is done
func (m *Manager) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(maxIdle)
		}
	}
}

func (m *Manager) restore(ctx context.Context, id string) (*State, error) {
	st := &State{
		ID:        id,
		Cart:      cart.NewStore(m.blobs, storage.Key(m.stores.CartStore, id), m.log),
		Wishlist:  wishlist.NewStore(m.blobs, storage.Key(m.stores.WishlistStore, id), m.log),
		validator: m.validator,
		pricing:   m.pricing,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return st.Cart.Restore(gctx) })
	g.Go(func() error { return st.Wishlist.Restore(gctx) })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	m.log.WithFields(logrus.Fields{
		"session_id": id,
		"cart":       st.Cart.Len(),
		"wishlist":   st.Wishlist.Len(),
	}).Debug("Session restored")
	return st, nil
}

func (s *State) refresh(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Cart.Refresh(gctx) })
	g.Go(func() error { return s.Wishlist.Refresh(gctx) })
	return g.Wait()
}
