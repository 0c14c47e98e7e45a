// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/payment"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/notify"
)

// PaymentHandler orchestrates the capture flows: checkout gate, provider
// call, order write, cart clear. The draft's order number is the idempotency
// key for every provider call so retries cannot double-charge.
type PaymentHandler struct {
	checkoutService *checkout.Service
	cartService     *cart.Service
	cardService     *payment.CardService
	walletService   *payment.WalletService
	orderService    *order.Service
	config          *config.Config
	log             *logrus.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(
	checkoutService *checkout.Service,
	cartService *cart.Service,
	cardService *payment.CardService,
	walletService *payment.WalletService,
	orderService *order.Service,
	cfg *config.Config,
	log *logrus.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		checkoutService: checkoutService,
		cartService:     cartService,
		cardService:     cardService,
		walletService:   walletService,
		orderService:    orderService,
		config:          cfg,
		log:             log,
	}
}

// ConfirmCardPaymentRequest represents the card confirm payload
type ConfirmCardPaymentRequest struct {
	IntentID string `json:"intent_id" binding:"required"`
}

// CaptureWalletOrderRequest represents the wallet capture payload
type CaptureWalletOrderRequest struct {
	ProviderOrderID string `json:"provider_order_id" binding:"required"`
}

// CreateCardIntent handles POST /payment/card/intent
func (h *PaymentHandler) CreateCardIntent(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	draft, _, breakdown, ok := h.beginCapture(c, sessionID)
	if !ok {
		return
	}

	intent, err := h.cardService.CreateIntent(c.Request.Context(), payment.CardIntentRequest{
		AmountCents:    breakdown.TotalCents,
		Currency:       h.config.Pricing.Currency,
		IdempotencyKey: draft.OrderNumber,
		ReceiptEmail:   draft.Customer.Email,
	})
	// The single-flight window only covers the provider call; confirmation
	// arrives on a later request and re-enters through BeginPayment.
	h.checkoutService.EndPayment(sessionID)
	if err != nil {
		h.log.WithError(err).WithField("order_number", draft.OrderNumber).Error("card intent creation failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Payment could not be started, please try again",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment intent created",
		"data": gin.H{
			"intent":       intent,
			"order_number": draft.OrderNumber,
		},
	})
}

// ConfirmCardPayment handles POST /payment/card/confirm
func (h *PaymentHandler) ConfirmCardPayment(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req ConfirmCardPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	draft, cartState, breakdown, ok := h.beginCapture(c, sessionID)
	if !ok {
		return
	}

	details, err := h.cardService.Confirm(c.Request.Context(), req.IntentID)
	if err != nil {
		h.checkoutService.EndPayment(sessionID)
		if errors.Is(err, payment.ErrDeclined) {
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": "Your card was declined",
			})
			return
		}
		h.log.WithError(err).WithField("order_number", draft.OrderNumber).Error("card confirmation failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Payment confirmation failed, please try again",
		})
		return
	}

	if details.AmountCents != breakdown.TotalCents {
		h.checkoutService.EndPayment(sessionID)
		h.log.WithFields(logrus.Fields{
			"order_number": draft.OrderNumber,
			"captured":     details.AmountCents,
			"expected":     breakdown.TotalCents,
		}).Error("captured amount does not match cart total")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Payment verification failed",
		})
		return
	}

	h.finishOrder(c, sessionID, draft, cartState, breakdown, details)
}

// CreateWalletOrder handles POST /payment/wallet/orders
func (h *PaymentHandler) CreateWalletOrder(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	draft, cartState, breakdown, ok := h.beginCapture(c, sessionID)
	if !ok {
		return
	}

	items := make([]payment.WalletOrderItem, 0, len(cartState.Lines))
	for _, line := range cartState.Lines {
		items = append(items, payment.WalletOrderItem{
			Name:           line.Product.Name,
			UnitPriceCents: line.Product.UnitPriceCents(),
			Quantity:       line.Quantity,
		})
	}

	walletOrder, err := h.walletService.CreateOrder(c.Request.Context(), payment.WalletOrderRequest{
		Items:       items,
		AmountCents: breakdown.TotalCents,
		Currency:    h.config.Pricing.Currency,
		Reference:   draft.OrderNumber,
	})
	h.checkoutService.EndPayment(sessionID)
	if err != nil {
		h.log.WithError(err).WithField("order_number", draft.OrderNumber).Error("wallet order creation failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Payment could not be started, please try again",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wallet order created",
		"data": gin.H{
			"wallet_order": walletOrder,
			"order_number": draft.OrderNumber,
		},
	})
}

// CaptureWalletOrder handles POST /payment/wallet/capture. A buyer who
// backed out of the wallet approval is not an error: the checkout stays on
// the payment step with an informational notice.
func (h *PaymentHandler) CaptureWalletOrder(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req CaptureWalletOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	draft, cartState, breakdown, ok := h.beginCapture(c, sessionID)
	if !ok {
		return
	}

	details, err := h.walletService.Capture(c.Request.Context(), req.ProviderOrderID)
	if err != nil {
		h.checkoutService.EndPayment(sessionID)
		switch {
		case errors.Is(err, payment.ErrCancelled):
			c.JSON(http.StatusOK, gin.H{
				"message": "Payment was cancelled",
				"data": gin.H{
					"captured": false,
					"notice":   notify.Info("Payment was cancelled, your cart is untouched"),
				},
			})
		case errors.Is(err, payment.ErrVerificationFailed):
			h.log.WithError(err).WithField("order_number", draft.OrderNumber).Error("wallet capture verification failed")
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment verification failed",
			})
		case errors.Is(err, payment.ErrDeclined):
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": "Payment was declined",
			})
		default:
			h.log.WithError(err).WithField("order_number", draft.OrderNumber).Error("wallet capture failed")
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment capture failed, please try again",
			})
		}
		return
	}

	h.finishOrder(c, sessionID, draft, cartState, breakdown, details)
}

// beginCapture runs the shared preamble of every capture endpoint: mark the
// payment in flight, snapshot the cart, price it. On failure the response is
// already written and ok is false.
func (h *PaymentHandler) beginCapture(c *gin.Context, sessionID string) (*checkout.Draft, *cart.Cart, pricing.Breakdown, bool) {
	draft, err := h.checkoutService.BeginPayment(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNoDraft):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active checkout",
			})
		case errors.Is(err, checkout.ErrNotAtPayment):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Checkout has not reached the payment step",
			})
		case errors.Is(err, checkout.ErrPaymentInFlight):
			c.JSON(http.StatusConflict, gin.H{
				"error": "A payment is already in progress",
			})
		case errors.Is(err, checkout.ErrSubmitted):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Checkout already submitted",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to start payment",
			})
		}
		return nil, nil, pricing.Breakdown{}, false
	}

	cartState, err := h.cartService.Get(c.Request.Context(), sessionID)
	if err != nil || cartState.IsEmpty() {
		h.checkoutService.EndPayment(sessionID)
		c.JSON(http.StatusConflict, gin.H{
			"error": "Your cart is empty",
		})
		return nil, nil, pricing.Breakdown{}, false
	}

	items := make([]pricing.LineItem, 0, len(cartState.Lines))
	for _, line := range cartState.Lines {
		items = append(items, pricing.LineItem{
			UnitPriceCents: line.Product.UnitPriceCents(),
			Quantity:       line.Quantity,
		})
	}
	breakdown := pricing.Calculate(items, h.config.Pricing.ForLine(cartState.Line()))

	return draft, cartState, breakdown, true
}

// finishOrder records the order after a confirmed capture. A write failure
// here is the one place where funds exist without an order row, so the
// response switches to a contact-support payload carrying the references
// the user needs, and the cart and draft are left intact.
func (h *PaymentHandler) finishOrder(c *gin.Context, sessionID string, draft *checkout.Draft, cartState *cart.Cart, breakdown pricing.Breakdown, details *payment.Details) {
	o, err := h.orderService.Create(c.Request.Context(), order.CreateInput{
		SessionID:   sessionID,
		OrderNumber: draft.OrderNumber,
		Customer:    draft.Customer,
		Addresses:   draft.Addresses,
		Notes:       draft.Notes,
		Lines:       cartState.Lines,
		Pricing:     breakdown,
		Currency:    h.config.Pricing.Currency,
		Payment:     *details,
	})
	if err != nil {
		h.checkoutService.EndPayment(sessionID)

		var writeErr *order.WriteError
		if errors.As(err, &writeErr) {
			h.log.WithError(writeErr).Error("order write failed after capture")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Your payment went through but we could not record the order. Please contact support.",
				"data": gin.H{
					"order_number":   writeErr.OrderNumber,
					"transaction_id": writeErr.TransactionID,
				},
			})
			return
		}

		h.log.WithError(err).WithField("order_number", draft.OrderNumber).Error("order creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create order",
		})
		return
	}

	h.checkoutService.Complete(sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Order placed successfully",
		"data": gin.H{
			"order":  o,
			"notice": notify.Success("Thank you, your order " + o.OrderNumber + " has been placed"),
		},
	})
}
