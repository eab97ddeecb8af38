package clients

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/adyen/adyen-go-api-library/v6/src/adyen"
	"github.com/adyen/adyen-go-api-library/v6/src/checkout"
	"github.com/adyen/adyen-go-api-library/v6/src/common"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"checkout-server/models"
)

const (
	ChannelWeb = "Web"

	EnvironmentTest = "TEST"
	EnvironmentLive = "LIVE"
)

// Options configures the provider client.
type Options struct {
	APIKey string
	// Environment is TEST or LIVE. Anything else is treated as TEST.
	Environment           string
	LiveEndpointURLPrefix string
	// Timeout bounds each call when set. Zero keeps the HTTP client default.
	Timeout time.Duration
	// HTTPClient replaces the transport, e.g. to point tests at a local server.
	HTTPClient *http.Client
}

// CheckoutClient calls the provider's Checkout API through its client library.
// Requests and responses cross this package as the handlers' own types and
// are converted to the library models at the edge.
type CheckoutClient struct {
	api    *adyen.APIClient
	logger *zap.SugaredLogger
}

type PaymentMethodsRequest struct {
	MerchantAccount string        `json:"merchantAccount"`
	CountryCode     string        `json:"countryCode,omitempty"`
	Amount          models.Amount `json:"amount"`
	Channel         string        `json:"channel"`
	ShopperLocale   string        `json:"shopperLocale,omitempty"`
}

type PaymentsRequest struct {
	MerchantAccount  string            `json:"merchantAccount"`
	Amount           models.Amount     `json:"amount"`
	Reference        string            `json:"reference"`
	PaymentMethod    map[string]any    `json:"paymentMethod"`
	ReturnURL        string            `json:"returnUrl"`
	Channel          string            `json:"channel"`
	CountryCode      string            `json:"countryCode,omitempty"`
	ShopperLocale    string            `json:"shopperLocale,omitempty"`
	ShopperEmail     string            `json:"shopperEmail,omitempty"`
	ShopperReference string            `json:"shopperReference,omitempty"`
	Origin           string            `json:"origin,omitempty"`
	BrowserInfo      map[string]any    `json:"browserInfo,omitempty"`
	BillingAddress   map[string]any    `json:"billingAddress,omitempty"`
	LineItems        []models.LineItem `json:"lineItems,omitempty"`
	AdditionalData   map[string]string `json:"additionalData,omitempty"`
}

type PaymentDetailsRequest struct {
	Details     map[string]any `json:"details"`
	PaymentData string         `json:"paymentData,omitempty"`
}

// PaymentResponse is the part of a payments or payments/details response the
// handlers act on.
type PaymentResponse struct {
	ResultCode        string         `json:"resultCode"`
	Action            map[string]any `json:"action,omitempty"`
	PspReference      string         `json:"pspReference,omitempty"`
	MerchantReference string         `json:"merchantReference,omitempty"`
	RefusalReason     string         `json:"refusalReason,omitempty"`
}

func NewCheckoutClient(opts Options, logger *zap.SugaredLogger) *CheckoutClient {
	env := common.TestEnv
	if strings.EqualFold(opts.Environment, EnvironmentLive) {
		env = common.LiveEnv
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &CheckoutClient{
		api: adyen.NewClient(&common.Config{
			ApiKey:                opts.APIKey,
			Environment:           env,
			LiveEndpointURLPrefix: opts.LiveEndpointURLPrefix,
			HTTPClient:            httpClient,
		}),
		logger: logger,
	}
}

// PaymentMethods lists the payment methods available for the request and
// returns the provider response as JSON-shaped data.
func (c *CheckoutClient) PaymentMethods(ctx context.Context, req PaymentMethodsRequest) (map[string]any, error) {
	const operation = "paymentMethods"

	var apiReq checkout.PaymentMethodsRequest
	if err := convert(req, &apiReq); err != nil {
		return nil, &models.UpstreamError{Operation: operation, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	c.logger.Debugw("provider request", "operation", operation, "country_code", req.CountryCode, "currency", req.Amount.Currency)

	apiResp, httpResp, err := c.api.Checkout.PaymentMethods(&apiReq, ctx)
	if err != nil {
		return nil, upstreamError(operation, httpResp, err)
	}

	var resp map[string]any
	if err := convert(apiResp, &resp); err != nil {
		return nil, &models.UpstreamError{Operation: operation, StatusCode: statusCode(httpResp), Err: fmt.Errorf("failed to read response: %w", err)}
	}
	return resp, nil
}

// Payments starts a payment.
func (c *CheckoutClient) Payments(ctx context.Context, req PaymentsRequest) (*PaymentResponse, error) {
	const operation = "payments"

	var apiReq checkout.PaymentRequest
	if err := convert(req, &apiReq); err != nil {
		return nil, &models.UpstreamError{Operation: operation, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	c.logger.Debugw("provider request", "operation", operation, "reference", req.Reference)

	apiResp, httpResp, err := c.api.Checkout.Payments(&apiReq, ctx)
	if err != nil {
		return nil, upstreamError(operation, httpResp, err)
	}
	return c.paymentResponse(operation, apiResp, httpResp)
}

// PaymentsDetails submits the additional details collected after an action or redirect.
func (c *CheckoutClient) PaymentsDetails(ctx context.Context, req PaymentDetailsRequest) (*PaymentResponse, error) {
	const operation = "payments/details"

	var apiReq checkout.DetailsRequest
	if err := convert(req, &apiReq); err != nil {
		return nil, &models.UpstreamError{Operation: operation, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	c.logger.Debugw("provider request", "operation", operation)

	apiResp, httpResp, err := c.api.Checkout.PaymentsDetails(&apiReq, ctx)
	if err != nil {
		return nil, upstreamError(operation, httpResp, err)
	}
	return c.paymentResponse(operation, apiResp, httpResp)
}

func (c *CheckoutClient) paymentResponse(operation string, apiResp any, httpResp *http.Response) (*PaymentResponse, error) {
	var resp PaymentResponse
	if err := convert(apiResp, &resp); err != nil {
		return nil, &models.UpstreamError{Operation: operation, StatusCode: statusCode(httpResp), Err: fmt.Errorf("failed to read response: %w", err)}
	}
	c.logger.Debugw("provider response", "operation", operation, "result_code", resp.ResultCode, "psp_reference", resp.PspReference)
	return &resp, nil
}

// convert copies between the handler types and the library models, which
// share the Checkout API wire format.
func convert(in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func upstreamError(operation string, httpResp *http.Response, err error) *models.UpstreamError {
	status := statusCode(httpResp)
	if status == 0 {
		return &models.UpstreamError{Operation: operation, Err: fmt.Errorf("failed to call provider: %w", err)}
	}
	return &models.UpstreamError{
		Operation:  operation,
		StatusCode: status,
		Message:    err.Error(),
		Err:        err,
	}
}

func statusCode(httpResp *http.Response) int {
	if httpResp == nil {
		return 0
	}
	return httpResp.StatusCode
}
