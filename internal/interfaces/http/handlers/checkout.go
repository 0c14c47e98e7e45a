// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// CheckoutHandler handles the checkout wizard endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// StartCheckout handles POST /checkout
func (h *CheckoutHandler) StartCheckout(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	draft, err := h.checkoutService.Start(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Your cart is empty",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to start checkout",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout started successfully",
		"data":    draft,
	})
}

// GetCheckout handles GET /checkout
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	draft, err := h.checkoutService.Get(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No active checkout",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout retrieved successfully",
		"data":    draft,
	})
}

// NextStep handles POST /checkout/next. A validation failure is a normal
// response: the draft stays parked and the field errors ride back for
// inline display.
func (h *CheckoutHandler) NextStep(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var input checkout.StepInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	draft, result, err := h.checkoutService.Next(sessionID, input)
	if err != nil {
		h.checkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout step processed",
		"data": gin.H{
			"draft":      draft,
			"validation": result,
		},
	})
}

// PreviousStep handles POST /checkout/back
func (h *CheckoutHandler) PreviousStep(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	draft, err := h.checkoutService.Back(sessionID)
	if err != nil {
		if errors.Is(err, checkout.ErrAtFirstStep) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Already at the first step",
			})
			return
		}
		h.checkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Moved to previous step",
		"data":    draft,
	})
}

// AbandonCheckout handles DELETE /checkout
func (h *CheckoutHandler) AbandonCheckout(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	h.checkoutService.Abandon(sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout abandoned",
	})
}

func (h *CheckoutHandler) checkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrNoDraft):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No active checkout",
		})
	case errors.Is(err, checkout.ErrSubmitted):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Checkout already submitted",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Checkout operation failed",
		})
	}
}
