package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"checkout-server/clients"
	"checkout-server/config"
	"checkout-server/models"
	"checkout-server/payments"
)

const (
	defaultIntegration = "dropin"
	// targetAction marks an event whose payment still needs a widget action.
	targetAction = "action"
)

// CheckoutAPI is the subset of the provider client the handlers use.
type CheckoutAPI interface {
	PaymentMethods(ctx context.Context, req clients.PaymentMethodsRequest) (map[string]any, error)
	Payments(ctx context.Context, req clients.PaymentsRequest) (*clients.PaymentResponse, error)
	PaymentsDetails(ctx context.Context, req clients.PaymentDetailsRequest) (*clients.PaymentResponse, error)
}

type PaymentsHandler struct {
	cfg        *config.Config
	checkout   CheckoutAPI
	normalizer *payments.Normalizer
	cart       models.Cart
	publisher  EventPublisher
	logger     *zap.SugaredLogger
}

func NewPaymentsHandler(cfg *config.Config, checkout CheckoutAPI, normalizer *payments.Normalizer, cart models.Cart, publisher EventPublisher, logger *zap.SugaredLogger) *PaymentsHandler {
	return &PaymentsHandler{
		cfg:        cfg,
		checkout:   checkout,
		normalizer: normalizer,
		cart:       cart,
		publisher:  publisher,
		logger:     logger,
	}
}

// GetPaymentMethods handles POST /api/getPaymentMethods
func (h *PaymentsHandler) GetPaymentMethods(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, &models.ValidationError{Field: "body", Message: err.Error()})
		return
	}

	req := models.PaymentMethodsRequestBody{Integration: defaultIntegration}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			respondError(c, &models.ValidationError{Field: "body", Message: "invalid JSON body"})
			return
		}
		if req.Integration == "" {
			req.Integration = defaultIntegration
		}
	}

	methods, err := h.paymentMethods(c.Request.Context(), req.Integration)
	if err != nil {
		requestLogger(c, h.logger).Errorw("paymentMethods call failed", "integration", req.Integration, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, methods)
}

func (h *PaymentsHandler) paymentMethods(ctx context.Context, integration string) (map[string]any, error) {
	countryCode, amount := h.normalizer.MethodsRequest(integration)
	return h.checkout.PaymentMethods(ctx, clients.PaymentMethodsRequest{
		MerchantAccount: h.cfg.MerchantAccount,
		CountryCode:     countryCode,
		Amount:          amount,
		Channel:         clients.ChannelWeb,
	})
}

// InitiatePayment handles POST /api/initiatePayment
func (h *PaymentsHandler) InitiatePayment(c *gin.Context) {
	log := requestLogger(c, h.logger)

	var state models.CheckoutStateData
	if err := c.ShouldBindJSON(&state); err != nil {
		respondError(c, &models.ValidationError{Field: "body", Message: "invalid JSON body"})
		return
	}

	submission, err := h.normalizer.Normalize(models.PaymentSubmission{
		MethodType: state.MethodType(),
		Amount:     models.Amount{Value: h.cart.Total()},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	req := clients.PaymentsRequest{
		MerchantAccount:  h.cfg.MerchantAccount,
		Amount:           submission.Amount,
		Reference:        "checkout-" + uuid.NewString(),
		PaymentMethod:    state.PaymentMethod,
		ReturnURL:        h.cfg.ReturnURL(),
		Channel:          clients.ChannelWeb,
		CountryCode:      submission.CountryCode,
		ShopperLocale:    submission.ShopperLocale,
		ShopperEmail:     submission.ShopperEmail,
		ShopperReference: h.cfg.ShopperReference,
		Origin:           submission.Origin,
		BrowserInfo:      state.BrowserInfo,
		BillingAddress:   state.BillingAddress,
		LineItems:        submission.LineItems,
		AdditionalData:   submission.AdditionalData,
	}

	log.Infow("initiating payment",
		"reference", req.Reference,
		"method_type", submission.MethodType,
		"rule", h.normalizer.Rule(submission.MethodType),
		"country_code", req.CountryCode,
		"amount", models.FormatAmount(req.Amount.Value, req.Amount.Currency),
		"currency", req.Amount.Currency)

	resp, err := h.checkout.Payments(c.Request.Context(), req)
	if err != nil {
		log.Errorw("payments call failed", "reference", req.Reference, "error", err)
		respondError(c, err)
		return
	}

	result, target := paymentResult(resp)
	publishEvent(c.Request.Context(), h.publisher, log,
		newPaymentEvent(operationPayments, req.Reference, submission.MethodType, resp, target))

	c.JSON(http.StatusOK, result)
}

// SubmitAdditionalDetails handles POST /api/submitAdditionalDetails
func (h *PaymentsHandler) SubmitAdditionalDetails(c *gin.Context) {
	log := requestLogger(c, h.logger)

	var sub models.DetailsSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		respondError(c, &models.ValidationError{Field: "body", Message: "invalid JSON body"})
		return
	}
	if len(sub.Details) == 0 {
		respondError(c, &models.ValidationError{Field: "details", Message: "details are required"})
		return
	}

	resp, err := h.checkout.PaymentsDetails(c.Request.Context(), clients.PaymentDetailsRequest{
		Details:     sub.Details,
		PaymentData: sub.PaymentData,
	})
	if err != nil {
		log.Errorw("payments/details call failed", "error", err)
		respondError(c, err)
		return
	}

	result, target := paymentResult(resp)
	publishEvent(c.Request.Context(), h.publisher, log,
		newPaymentEvent(operationDetails, "", "", resp, target))

	c.JSON(http.StatusOK, result)
}

// paymentResult strips the provider response down to what the widget needs.
// Final results carry the view the browser should navigate to.
func paymentResult(resp *clients.PaymentResponse) (models.PaymentResult, string) {
	result := models.PaymentResult{
		ResultCode: resp.ResultCode,
		Action:     resp.Action,
	}
	if len(resp.Action) > 0 {
		return result, targetAction
	}

	target := payments.RoutePayment(payments.ResultCode(resp.ResultCode))
	result.Redirect = target.Path()
	return result, string(target)
}
