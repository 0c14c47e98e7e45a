// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/infrastructure/kv"
	"github.com/your-org/storefront/internal/pkg/notify"
)

const keyPrefix = "wishlist:session:"

// DefaultCooldown is the window in which repeated add calls for the same
// product are treated as one user action.
const DefaultCooldown = 750 * time.Millisecond

// Item represents a saved product snapshot
type Item struct {
	Product catalog.Snapshot `json:"product"`
	AddedAt time.Time        `json:"added_at"`
}

// Wishlist is the deduplicated set of saved products for one session
type Wishlist struct {
	SessionID string `json:"session_id"`
	Items     []Item `json:"items"`
	Hydrated  bool   `json:"hydrated"`
}

// Contains reports whether the wishlist holds productID
func (w *Wishlist) Contains(productID uint) bool {
	for _, it := range w.Items {
		if it.Product.ProductID == productID {
			return true
		}
	}
	return false
}

// AddResult reports the outcome of an add call
type AddResult struct {
	Added  bool          `json:"added"`
	Notice notify.Notice `json:"notice"`
}

// Service handles wishlist business logic. A per-(session,product) cooldown
// guard keeps a rapid double-fired UI event from enqueueing the same product
// twice.
type Service struct {
	store    kv.Store
	log      *logrus.Logger
	stateTTL time.Duration
	guard    *addGuard

	locks sync.Map // sessionID -> *sync.Mutex
}

// NewService creates a new wishlist service
func NewService(store kv.Store, log *logrus.Logger, stateTTL time.Duration) *Service {
	return &Service{
		store:    store,
		log:      log,
		stateTTL: stateTTL,
		guard:    newAddGuard(DefaultCooldown),
	}
}

func (s *Service) sessionLock(sessionID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Get hydrates the wishlist for a session
func (s *Service) Get(ctx context.Context, sessionID string) (*Wishlist, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}
	return s.load(ctx, sessionID), nil
}

// Add saves a product snapshot. A duplicate product id is a no-op that
// surfaces a user-visible notice rather than an error; a second call inside
// the cooldown window is dropped the same way.
func (s *Service) Add(ctx context.Context, sessionID string, snapshot catalog.Snapshot) (*AddResult, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	if !s.guard.tryAcquire(guardKey(sessionID, snapshot.ProductID), time.Now()) {
		return &AddResult{
			Added:  false,
			Notice: notify.Info(fmt.Sprintf("%s is already being added to your wishlist", snapshot.Name)),
		}, nil
	}

	mu := s.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	w := s.load(ctx, sessionID)

	if w.Contains(snapshot.ProductID) {
		return &AddResult{
			Added:  false,
			Notice: notify.Info(fmt.Sprintf("%s is already in your wishlist", snapshot.Name)),
		}, nil
	}

	w.Items = append(w.Items, Item{
		Product: snapshot,
		AddedAt: time.Now().UTC(),
	})

	if err := s.persist(ctx, w); err != nil {
		return nil, err
	}

	return &AddResult{
		Added:  true,
		Notice: notify.Success(fmt.Sprintf("%s added to your wishlist", snapshot.Name)),
	}, nil
}

// Remove deletes a product from the wishlist. No-op if absent.
func (s *Service) Remove(ctx context.Context, sessionID string, productID uint) (*Wishlist, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	mu := s.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	w := s.load(ctx, sessionID)

	for i := range w.Items {
		if w.Items[i].Product.ProductID == productID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			if err := s.persist(ctx, w); err != nil {
				return nil, err
			}
			break
		}
	}

	return w, nil
}

// Contains reports whether the session's wishlist holds productID
func (s *Service) Contains(ctx context.Context, sessionID string, productID uint) (bool, error) {
	if sessionID == "" {
		return false, fmt.Errorf("session ID required")
	}
	return s.load(ctx, sessionID).Contains(productID), nil
}

// Clear empties the wishlist
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

func (s *Service) load(ctx context.Context, sessionID string) *Wishlist {
	w := &Wishlist{SessionID: sessionID, Items: []Item{}}

	raw, err := s.store.Get(ctx, keyPrefix+sessionID)
	w.Hydrated = true
	if err == kv.ErrNotFound {
		return w
	}
	if err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("wishlist store read failed, starting empty")
		return w
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("stored wishlist is malformed, starting empty")
		return w
	}

	// Dedupe by product id in case an older payload carries duplicates
	seen := make(map[uint]bool, len(items))
	for _, it := range items {
		if it.Product.ProductID == 0 || seen[it.Product.ProductID] {
			continue
		}
		seen[it.Product.ProductID] = true
		w.Items = append(w.Items, it)
	}

	return w
}

func (s *Service) persist(ctx context.Context, w *Wishlist) error {
	data, err := json.Marshal(w.Items)
	if err != nil {
		return fmt.Errorf("failed to serialize wishlist: %w", err)
	}
	if err := s.store.Set(ctx, keyPrefix+w.SessionID, string(data), s.stateTTL); err != nil {
		return fmt.Errorf("failed to persist wishlist: %w", err)
	}
	return nil
}

func guardKey(sessionID string, productID uint) string {
	return fmt.Sprintf("%s:%d", sessionID, productID)
}
