// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/infrastructure/kv"
)

const keyPrefix = "cart:session:"

// Service handles cart business logic. The cart is mirrored to the KV store
// under a fixed namespaced key after every mutation; a malformed stored value
// degrades to an empty cart instead of failing the request.
type Service struct {
	store    kv.Store
	log      *logrus.Logger
	stateTTL time.Duration

	// Per-session locks keep a read-modify-write cycle atomic so a sequence
	// of mutations from one session applies in call order.
	locks sync.Map // sessionID -> *sync.Mutex
}

// NewService creates a new cart service
func NewService(store kv.Store, log *logrus.Logger, stateTTL time.Duration) *Service {
	return &Service{
		store:    store,
		log:      log,
		stateTTL: stateTTL,
	}
}

func (s *Service) sessionLock(sessionID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Get hydrates the cart for a session from the KV store
func (s *Service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}
	return s.load(ctx, sessionID), nil
}

// AddItem adds a product snapshot to the cart. If a line for the product
// already exists its quantity is incremented; otherwise a new line is
// appended with a fresh line id. Quantity is clamped to at least 1.
func (s *Service) AddItem(ctx context.Context, sessionID string, snapshot catalog.Snapshot, quantity int) (*Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}
	if quantity < 1 {
		quantity = 1
	}

	mu := s.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	c := s.load(ctx, sessionID)

	if i := c.findLine(snapshot.ProductID); i >= 0 {
		c.Lines[i].Quantity += quantity
	} else {
		c.Lines = append(c.Lines, Line{
			LineID:   uuid.New().String(),
			Product:  snapshot,
			Quantity: quantity,
		})
	}

	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem removes the line holding productID. No-op if absent.
func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID uint) (*Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	mu := s.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	c := s.load(ctx, sessionID)

	i := c.findLine(productID)
	if i < 0 {
		return c, nil
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)

	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQuantity replaces the quantity of an existing line. A quantity of
// zero or less removes the line. Unknown product ids are a no-op; an update
// never creates a line.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID uint, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, productID)
	}
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	mu := s.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	c := s.load(ctx, sessionID)

	i := c.findLine(productID)
	if i < 0 {
		return c, nil
	}
	c.Lines[i].Quantity = quantity

	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties the cart. Called exactly once, after an order insert
// succeeds, never before.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID required")
	}

	mu := s.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	return s.store.Delete(ctx, keyPrefix+sessionID)
}

// Private helper methods

// load reads the stored line array for a session. Missing or malformed
// payloads become an empty cart; corruption is logged, never surfaced.
func (s *Service) load(ctx context.Context, sessionID string) *Cart {
	c := &Cart{
		SessionID: sessionID,
		Lines:     []Line{},
		UpdatedAt: time.Now().UTC(),
	}

	raw, err := s.store.Get(ctx, keyPrefix+sessionID)
	c.Hydrated = true
	if err == kv.ErrNotFound {
		return c
	}
	if err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("cart store read failed, starting empty")
		return c
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("stored cart is malformed, starting empty")
		return c
	}

	// Drop lines that don't match the expected shape
	for _, l := range lines {
		if l.Product.ProductID == 0 || l.Quantity <= 0 {
			continue
		}
		if l.LineID == "" {
			l.LineID = uuid.New().String()
		}
		c.Lines = append(c.Lines, l)
	}

	return c
}

// persist writes the full current state back, last-write-wins
func (s *Service) persist(ctx context.Context, c *Cart) error {
	c.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(c.Lines)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}
	if err := s.store.Set(ctx, keyPrefix+c.SessionID, string(data), s.stateTTL); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
