package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"checkout-server/config"
	"checkout-server/models"
	"checkout-server/payments"
	"checkout-server/validators"
)

type PageHandler struct {
	cfg      *config.Config
	payments *PaymentsHandler
	cart     models.Cart
	logger   *zap.SugaredLogger
}

type cartLine struct {
	Description string
	Quantity    int64
	Price       string
}

type terminalView struct {
	template string
	title    string
	message  string
}

var terminalViews = map[payments.Target]terminalView{
	payments.TargetSuccess: {"checkout-success.html", "Payment authorised", "Your order has been successfully placed."},
	payments.TargetPending: {"checkout-success.html", "Payment pending", "We will let you know as soon as your payment is confirmed."},
	payments.TargetFailed:  {"checkout-failed.html", "Payment failed", "Your payment was refused. Please try a different payment method."},
	payments.TargetError:   {"checkout-failed.html", "Something went wrong", "An error occurred while processing your payment."},
}

func NewPageHandler(cfg *config.Config, paymentsHandler *PaymentsHandler, cart models.Cart, logger *zap.SugaredLogger) *PageHandler {
	return &PageHandler{
		cfg:      cfg,
		payments: paymentsHandler,
		cart:     cart,
		logger:   logger,
	}
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{})
}

// Cart handles GET /cart/:integration
func (h *PageHandler) Cart(c *gin.Context) {
	integration, ok := h.integrationParam(c)
	if !ok {
		return
	}

	_, amount := h.payments.normalizer.MethodsRequest(integration)
	lines := make([]cartLine, len(h.cart.Items))
	for i, item := range h.cart.Items {
		lines[i] = cartLine{
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       models.FormatAmount(item.Quantity*item.UnitPrice, amount.Currency),
		}
	}

	c.HTML(http.StatusOK, "cart.html", gin.H{
		"integrationType": "/checkout/" + integration,
		"items":           lines,
		"total":           models.FormatAmount(amount.Value, amount.Currency),
		"currency":        amount.Currency,
	})
}

// Checkout handles GET /checkout/:integration
func (h *PageHandler) Checkout(c *gin.Context) {
	integration, ok := h.integrationParam(c)
	if !ok {
		return
	}

	methods, err := h.payments.paymentMethods(c.Request.Context(), integration)
	if err != nil {
		requestLogger(c, h.logger).Errorw("failed to load payment methods", "integration", integration, "error", err)
		h.renderTerminal(c, http.StatusBadGateway, payments.TargetError, "Payment methods are currently unavailable.")
		return
	}

	_, amount := h.payments.normalizer.MethodsRequest(integration)
	c.HTML(http.StatusOK, "component.html", gin.H{
		"paymentMethods":  methods,
		"clientKey":       h.cfg.ClientKey,
		"integrationType": integration,
		"total":           models.FormatAmount(amount.Value, amount.Currency),
		"currency":        amount.Currency,
	})
}

// Terminal renders one of the four final checkout views.
func (h *PageHandler) Terminal(target payments.Target) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.renderTerminal(c, http.StatusOK, target, "")
	}
}

func (h *PageHandler) renderTerminal(c *gin.Context, status int, target payments.Target, detail string) {
	view := terminalViews[target]
	c.HTML(status, view.template, gin.H{
		"status":  string(target),
		"title":   view.title,
		"message": view.message,
		"detail":  detail,
	})
}

func (h *PageHandler) integrationParam(c *gin.Context) (string, bool) {
	integration := c.Param("integration")
	if !validators.ValidateIntegrationType(integration) {
		respondError(c, &models.ValidationError{Field: "integration", Message: "unknown integration type"})
		return "", false
	}
	return integration, true
}
