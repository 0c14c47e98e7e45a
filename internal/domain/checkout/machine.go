// internal/domain/checkout/machine.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
)

var (
	// ErrEmptyCart blocks checkout entirely before step 1
	ErrEmptyCart = errors.New("checkout: cart is empty")
	// ErrNoDraft is returned when a session has not started checkout
	ErrNoDraft = errors.New("checkout: no active checkout for session")
	// ErrAtFirstStep is returned by Back from step 1
	ErrAtFirstStep = errors.New("checkout: already at the first step")
	// ErrPaymentInFlight rejects a second capture attempt for the same draft
	ErrPaymentInFlight = errors.New("checkout: a payment is already in progress")
	// ErrNotAtPayment is returned when payment starts before step 3 is reached
	ErrNotAtPayment = errors.New("checkout: payment step not reached")
	// ErrSubmitted is returned for operations on a finished checkout
	ErrSubmitted = errors.New("checkout: checkout already submitted")
)

// StepInput carries the payload for the current step. Exactly one field is
// consulted, chosen by the draft's current step.
type StepInput struct {
	Customer  *CustomerInfo `json:"customer,omitempty"`
	Addresses *AddressInfo  `json:"addresses,omitempty"`
	Method    *Method       `json:"method,omitempty"`
	Notes     string        `json:"notes,omitempty"`
}

// Service owns the checkout drafts. Transitions are strictly linear: Next
// advances only when the current step's validator passes, Back is always
// permitted except from step 1, and Submitted is reachable only through
// Complete after a confirmed capture and order write.
type Service struct {
	carts *cart.Service
	log   *logrus.Logger

	mu     sync.Mutex
	drafts map[string]*Draft
}

// NewService creates a new checkout service
func NewService(carts *cart.Service, log *logrus.Logger) *Service {
	return &Service{
		carts:  carts,
		log:    log,
		drafts: make(map[string]*Draft),
	}
}

// Start creates a fresh draft for the session. Checkout is blocked entirely
// when the cart is empty. Re-entering checkout discards any previous draft.
func (s *Service) Start(ctx context.Context, sessionID string) (*Draft, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	draft := &Draft{
		SessionID: sessionID,
		Step:      StepCustomerInfo,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.drafts[sessionID] = draft
	s.mu.Unlock()

	return draft, nil
}

// Get returns the session's active draft
func (s *Service) Get(sessionID string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[sessionID]
	if !ok {
		return nil, ErrNoDraft
	}
	return draft, nil
}

// Next validates the current step's payload and, on success, stores it and
// advances. A failed validation leaves the draft untouched and parked on the
// current step.
func (s *Service) Next(sessionID string, input StepInput) (*Draft, *ValidationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[sessionID]
	if !ok {
		return nil, nil, ErrNoDraft
	}

	switch draft.Step {
	case StepCustomerInfo:
		if input.Customer == nil {
			return draft, &ValidationResult{Valid: false, Errors: []string{"customer details are required"}}, nil
		}
		result := validateCustomerInfo(*input.Customer)
		if !result.Valid {
			return draft, &result, nil
		}
		draft.Customer = *input.Customer
		draft.Step = StepShippingBilling
		return draft, &result, nil

	case StepShippingBilling:
		if input.Addresses == nil {
			return draft, &ValidationResult{Valid: false, Errors: []string{"address details are required"}}, nil
		}
		result := validateAddresses(*input.Addresses)
		if !result.Valid {
			return draft, &result, nil
		}
		draft.Addresses = *input.Addresses
		draft.Step = StepPayment
		return draft, &result, nil

	case StepPayment:
		var method Method
		if input.Method != nil {
			method = *input.Method
		}
		result := validateMethod(method)
		if !result.Valid {
			return draft, &result, nil
		}
		draft.Method = method
		draft.Notes = input.Notes
		// Step 3 is a pass-through gate; the transition to Submitted only
		// happens through Complete after a confirmed capture.
		return draft, &result, nil

	default:
		return nil, nil, ErrSubmitted
	}
}

// Back moves one step towards the start. Always permitted except from step 1.
func (s *Service) Back(sessionID string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[sessionID]
	if !ok {
		return nil, ErrNoDraft
	}
	if draft.Step == StepSubmitted {
		return nil, ErrSubmitted
	}
	if draft.Step == StepCustomerInfo {
		return draft, ErrAtFirstStep
	}

	draft.Step--
	return draft, nil
}

// BeginPayment marks a capture as in flight and returns the draft with its
// order number. The number is generated on the first attempt and reused on
// retries so providers can dedupe. A second concurrent attempt is rejected.
func (s *Service) BeginPayment(sessionID string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[sessionID]
	if !ok {
		return nil, ErrNoDraft
	}
	if draft.Step == StepSubmitted {
		return nil, ErrSubmitted
	}
	if draft.Step != StepPayment || draft.Method == "" {
		return nil, ErrNotAtPayment
	}
	if draft.paymentInFlight {
		return nil, ErrPaymentInFlight
	}

	draft.paymentInFlight = true
	if draft.OrderNumber == "" {
		draft.OrderNumber = newOrderNumber()
	}

	return draft, nil
}

// EndPayment clears the in-flight flag after a failed or cancelled capture,
// leaving the draft parked on the payment step so no entered data is lost.
func (s *Service) EndPayment(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if draft, ok := s.drafts[sessionID]; ok {
		draft.paymentInFlight = false
	}
}

// Complete marks the checkout submitted and discards the draft. Only called
// after the order insert succeeded.
func (s *Service) Complete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if draft, ok := s.drafts[sessionID]; ok {
		draft.Step = StepSubmitted
		draft.paymentInFlight = false
		delete(s.drafts, sessionID)
	}
}

// Abandon discards the session's draft, e.g. when the user navigates away
func (s *Service) Abandon(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
}
