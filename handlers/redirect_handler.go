package handlers

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"checkout-server/clients"
	"checkout-server/models"
	"checkout-server/payments"
)

const (
	fetchPaymentDataTemplate = "fetch-payment-data.html"
	correlationMarker        = "paymentData"
)

// RedirectHandler completes payments that left the site, e.g. for an issuer
// page or a 3D Secure challenge.
type RedirectHandler struct {
	checkout  CheckoutAPI
	publisher EventPublisher
	logger    *zap.SugaredLogger
}

func NewRedirectHandler(checkout CheckoutAPI, publisher EventPublisher, logger *zap.SugaredLogger) *RedirectHandler {
	return &RedirectHandler{
		checkout:  checkout,
		publisher: publisher,
		logger:    logger,
	}
}

// HandleRedirectGet handles GET /api/handleShopperRedirect
func (h *RedirectHandler) HandleRedirectGet(c *gin.Context) {
	var key, value string
	if v, ok := c.GetQuery("redirectResult"); ok {
		key, value = "redirectResult", v
	} else if v, ok := c.GetQuery("payload"); ok {
		key, value = "payload", v
	}

	h.renderFetchPaymentData(c, [][2]string{{key, value}})
}

// HandleRedirectPost handles POST /api/handleShopperRedirect
func (h *RedirectHandler) HandleRedirectPost(c *gin.Context) {
	log := requestLogger(c, h.logger)

	body, err := c.GetRawData()
	if err != nil {
		respondError(c, &models.ValidationError{Field: "body", Message: err.Error()})
		return
	}

	// An issuer posting back after a 3D Secure challenge sends MD and PaRes
	// without the correlation value, which only the browser holds.
	if !bytes.Contains(body, []byte(correlationMarker)) {
		values, err := positionalValues(string(body), 2)
		if err != nil {
			respondError(c, err)
			return
		}
		h.renderFetchPaymentData(c, [][2]string{{"MD", values[0]}, {"PaRes", values[1]}})
		return
	}

	req, err := parseDetailsBody(c.ContentType(), body)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.checkout.PaymentsDetails(c.Request.Context(), req)
	if err != nil {
		log.Errorw("payments/details call after redirect failed", "error", err)
		c.Redirect(http.StatusFound, payments.TargetError.Path())
		return
	}

	target := payments.RouteRedirect(payments.ResultCode(resp.ResultCode))
	publishEvent(c.Request.Context(), h.publisher, log,
		newPaymentEvent(operationDetails, "", "", resp, string(target)))

	log.Infow("shopper redirect completed", "result_code", resp.ResultCode, "target", target)
	c.Redirect(http.StatusFound, target.Path())
}

func (h *RedirectHandler) renderFetchPaymentData(c *gin.Context, pairs [][2]string) {
	values, err := valuesArray(pairs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.HTML(http.StatusOK, fetchPaymentDataTemplate, gin.H{
		"valuesArray": values,
	})
}

// valuesArray renders pairs as a JavaScript object literal, one member per
// line. Keys and values are JSON string literals, so the result is safe to
// embed in a script element.
func valuesArray(pairs [][2]string) (template.JS, error) {
	members := make([]string, 0, len(pairs))
	for _, p := range pairs {
		k, err := json.Marshal(p[0])
		if err != nil {
			return "", err
		}
		v, err := json.Marshal(p[1])
		if err != nil {
			return "", err
		}
		members = append(members, string(k)+": "+string(v))
	}
	return template.JS("{\n" + strings.Join(members, ",\n") + "\n}"), nil
}

// positionalValues returns the first n values of a form-encoded body in the
// order they were sent.
func positionalValues(body string, n int) ([]string, error) {
	values := make([]string, 0, n)
	for _, field := range strings.Split(body, "&") {
		if field == "" {
			continue
		}
		_, raw, _ := strings.Cut(field, "=")
		value, err := url.QueryUnescape(raw)
		if err != nil {
			return nil, &models.ValidationError{Field: "body", Message: "malformed form value"}
		}
		values = append(values, value)
		if len(values) == n {
			return values, nil
		}
	}
	return nil, &models.ValidationError{Field: "body", Message: "expected MD and PaRes parameters"}
}

// parseDetailsBody accepts the JSON body posted by the widget or the form
// posted by the intermediate redirect page.
func parseDetailsBody(contentType string, body []byte) (clients.PaymentDetailsRequest, error) {
	if contentType == "application/json" {
		var sub models.DetailsSubmission
		if err := json.Unmarshal(body, &sub); err != nil {
			return clients.PaymentDetailsRequest{}, &models.ValidationError{Field: "body", Message: "invalid JSON body"}
		}
		if len(sub.Details) == 0 {
			return clients.PaymentDetailsRequest{}, &models.ValidationError{Field: "details", Message: "details are required"}
		}
		return clients.PaymentDetailsRequest{Details: sub.Details, PaymentData: sub.PaymentData}, nil
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		return clients.PaymentDetailsRequest{}, &models.ValidationError{Field: "body", Message: "malformed form body"}
	}

	req := clients.PaymentDetailsRequest{
		PaymentData: form.Get(correlationMarker),
		Details:     map[string]any{},
	}
	if raw := form.Get("details"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Details); err != nil {
			return clients.PaymentDetailsRequest{}, &models.ValidationError{Field: "details", Message: "details must be a JSON object"}
		}
	} else {
		for key := range form {
			if key != correlationMarker {
				req.Details[key] = form.Get(key)
			}
		}
	}

	if len(req.Details) == 0 {
		return clients.PaymentDetailsRequest{}, &models.ValidationError{Field: "details", Message: "details are required"}
	}
	return req, nil
}
