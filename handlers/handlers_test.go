package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"checkout-server/clients"
	"checkout-server/config"
	"checkout-server/models"
)

type mockCheckout struct {
	paymentMethodsFn  func(ctx context.Context, req clients.PaymentMethodsRequest) (map[string]any, error)
	paymentsFn        func(ctx context.Context, req clients.PaymentsRequest) (*clients.PaymentResponse, error)
	paymentsDetailsFn func(ctx context.Context, req clients.PaymentDetailsRequest) (*clients.PaymentResponse, error)
}

func (m *mockCheckout) PaymentMethods(ctx context.Context, req clients.PaymentMethodsRequest) (map[string]any, error) {
	if m.paymentMethodsFn != nil {
		return m.paymentMethodsFn(ctx, req)
	}
	return map[string]any{"paymentMethods": []any{}}, nil
}

func (m *mockCheckout) Payments(ctx context.Context, req clients.PaymentsRequest) (*clients.PaymentResponse, error) {
	if m.paymentsFn != nil {
		return m.paymentsFn(ctx, req)
	}
	return &clients.PaymentResponse{ResultCode: "Authorised"}, nil
}

func (m *mockCheckout) PaymentsDetails(ctx context.Context, req clients.PaymentDetailsRequest) (*clients.PaymentResponse, error) {
	if m.paymentsDetailsFn != nil {
		return m.paymentsDetailsFn(ctx, req)
	}
	return &clients.PaymentResponse{ResultCode: "Authorised"}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.PaymentEvent
	err    error
}

func (p *recordingPublisher) PublishPaymentEvent(_ context.Context, event models.PaymentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

// deniedFS fails every open with a permission error.
type deniedFS struct{}

func (deniedFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
}

var upstreamFailure = &models.UpstreamError{Operation: "payments", StatusCode: http.StatusUnauthorized, ErrorCode: "000", Message: "HTTP Status Response - Unauthorized"}

func testConfig() *config.Config {
	return &config.Config{
		MerchantAccount:  "TestMerchant",
		APIKey:           "test-api-key",
		ClientKey:        "test_client_key",
		BaseURL:          "http://localhost:8080",
		ShopperEmail:     "shopper@example.com",
		ShopperReference: "Checkout Demo Shopper",
	}
}

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"img/favicon.ico":      {Data: []byte{0x00, 0x00, 0x01, 0x00}},
		"css/application.css": {Data: []byte("body { margin: 0; }")},
	}
}

func setupRouter(t *testing.T, checkout CheckoutAPI, publisher EventPublisher, assets fs.FS) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if publisher == nil {
		publisher = &recordingPublisher{}
	}
	if assets == nil {
		assets = testAssets()
	}

	router, err := NewRouter(RouterConfig{
		Config:    testConfig(),
		Checkout:  checkout,
		Publisher: publisher,
		Cart:      models.DefaultCart(),
		Assets:    assets,
		Logger:    zap.NewNop().Sugar(),
	})
	require.NoError(t, err)
	return router
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return serve(router, req)
}

func postForm(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return serve(router, req)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorBody {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealth(t *testing.T) {
	router := setupRouter(t, &mockCheckout{}, nil, nil)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK"}`, w.Body.String())
}

func TestRequestIDIsEchoed(t *testing.T) {
	router := setupRouter(t, &mockCheckout{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := serve(router, req)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))

	w = serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHomePage(t *testing.T) {
	router := setupRouter(t, &mockCheckout{}, nil, nil)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/cart/dropin")
}

func TestCartPage(t *testing.T) {
	router := setupRouter(t, &mockCheckout{}, nil, nil)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/cart/dropin", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Sunglasses")
	assert.Contains(t, body, "Headphones")
	assert.Contains(t, body, "100.00 EUR")
	assert.Contains(t, body, `href="/checkout/dropin"`)
}

func TestCartPage_DotpayUsesZloty(t *testing.T) {
	router := setupRouter(t, &mockCheckout{}, nil, nil)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/cart/dotpay", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "100.00 PLN")
}

func TestCartPage_InvalidIntegration(t *testing.T) {
	router := setupRouter(t, &mockCheckout{}, nil, nil)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/cart/drop.in", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.KindValidation, decodeError(t, w).Kind)
}

func TestCheckoutPage(t *testing.T) {
	var received clients.PaymentMethodsRequest
	checkout := &mockCheckout{
		paymentMethodsFn: func(_ context.Context, req clients.PaymentMethodsRequest) (map[string]any, error) {
			received = req
			return map[string]any{"paymentMethods": []any{map[string]any{"type": "scheme", "name": "Cards"}}}, nil
		},
	}
	router := setupRouter(t, checkout, nil, nil)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/checkout/card", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "test_client_key")
	assert.Contains(t, body, "Cards")
	assert.Equal(t, "TestMerchant", received.MerchantAccount)
	assert.Equal(t, clients.ChannelWeb, received.Channel)
	assert.Equal(t, models.Amount{Currency: "EUR", Value: 10000}, received.Amount)
}

func TestCheckoutPage_ProviderFailure(t *testing.T) {
	checkout := &mockCheckout{
		paymentMethodsFn: func(context.Context, clients.PaymentMethodsRequest) (map[string]any, error) {
			return nil, upstreamFailure
		},
	}
	router := setupRouter(t, checkout, nil, nil)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/checkout/dropin", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "status-error")
}

func TestTerminalPages(t *testing.T) {
	router := setupRouter(t, &mockCheckout{}, nil, nil)

	tests := []struct {
		path    string
		heading string
	}{
		{"/success", "Payment authorised"},
		{"/pending", "Payment pending"},
		{"/failed", "Payment failed"},
		{"/error", "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := serve(router, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.heading)
			assert.Contains(t, w.Body.String(), "status-"+strings.TrimPrefix(tt.path, "/"))
		})
	}
}

func TestGetPaymentMethods(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantCountry string
		wantCurr    string
	}{
		{"no body defaults to dropin", "", "NL", "EUR"},
		{"dotpay", `{"integration":"dotpay"}`, "PL", "PLN"},
		{"giropay", `{"integration":"giropay"}`, "DE", "EUR"},
		{"ach", `{"integration":"ach"}`, "US", "EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received clients.PaymentMethodsRequest
			checkout := &mockCheckout{
				paymentMethodsFn: func(_ context.Context, req clients.PaymentMethodsRequest) (map[string]any, error) {
					received = req
					return map[string]any{"paymentMethods": []any{map[string]any{"type": "ideal"}}}, nil
				},
			}
			router := setupRouter(t, checkout, nil, nil)

			w := postJSON(router, "/api/getPaymentMethods", tt.body)

			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"paymentMethods":[{"type":"ideal"}]}`, w.Body.String())
			assert.Equal(t, tt.wantCountry, received.CountryCode)
			assert.Equal(t, tt.wantCurr, received.Amount.Currency)
			assert.Equal(t, int64(10000), received.Amount.Value)
		})
	}
}

func TestGetPaymentMethods_ProviderFailure(t *testing.T) {
	checkout := &mockCheckout{
		paymentMethodsFn: func(context.Context, clients.PaymentMethodsRequest) (map[string]any, error) {
			return nil, upstreamFailure
		},
	}
	router := setupRouter(t, checkout, nil, nil)

	w := postJSON(router, "/api/getPaymentMethods", "")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	errBody := decodeError(t, w)
	assert.Equal(t, models.KindUpstream, errBody.Kind)
	assert.NotContains(t, errBody.Message, "test-api-key")
}

func TestInitiatePayment_Scheme(t *testing.T) {
	var received clients.PaymentsRequest
	checkout := &mockCheckout{
		paymentsFn: func(_ context.Context, req clients.PaymentsRequest) (*clients.PaymentResponse, error) {
			received = req
			return &clients.PaymentResponse{ResultCode: "Authorised", PspReference: "PSP1"}, nil
		},
	}
	publisher := &recordingPublisher{}
	router := setupRouter(t, checkout, publisher, nil)

	w := postJSON(router, "/api/initiatePayment",
		`{"paymentMethod":{"type":"scheme","encryptedCardNumber":"enc"},"browserInfo":{"userAgent":"test"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"resultCode":"Authorised","redirect":"/success"}`, w.Body.String())

	assert.Equal(t, "TestMerchant", received.MerchantAccount)
	assert.Equal(t, models.Amount{Currency: "EUR", Value: 10000}, received.Amount)
	assert.Equal(t, "NL", received.CountryCode)
	assert.Equal(t, "true", received.AdditionalData["allow3DS2"])
	assert.Equal(t, "http://localhost:8080", received.Origin)
	assert.Equal(t, "http://localhost:8080/api/handleShopperRedirect", received.ReturnURL)
	assert.Equal(t, clients.ChannelWeb, received.Channel)
	assert.Equal(t, "Checkout Demo Shopper", received.ShopperReference)
	assert.True(t, strings.HasPrefix(received.Reference, "checkout-"))
	assert.Equal(t, "test", received.BrowserInfo["userAgent"])

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, operationPayments, event.Operation)
	assert.Equal(t, received.Reference, event.Reference)
	assert.Equal(t, "scheme", event.MethodType)
	assert.Equal(t, "success", event.Target)
	assert.Equal(t, "PSP1", event.PspReference)
}

func TestInitiatePayment_Klarna(t *testing.T) {
	var received clients.PaymentsRequest
	checkout := &mockCheckout{
		paymentsFn: func(_ context.Context, req clients.PaymentsRequest) (*clients.PaymentResponse, error) {
			received = req
			return &clients.PaymentResponse{ResultCode: "RedirectShopper", Action: map[string]any{"type": "redirect"}}, nil
		},
	}
	publisher := &recordingPublisher{}
	router := setupRouter(t, checkout, publisher, nil)

	w := postJSON(router, "/api/initiatePayment", `{"paymentMethod":{"type":"klarna_paynow"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"resultCode":"RedirectShopper","action":{"type":"redirect"}}`, w.Body.String())
	assert.Equal(t, "shopper@example.com", received.ShopperEmail)
	assert.Equal(t, "en_US", received.ShopperLocale)
	assert.Len(t, received.LineItems, 2)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, targetAction, publisher.events[0].Target)
}

func TestInitiatePayment_Refused(t *testing.T) {
	checkout := &mockCheckout{
		paymentsFn: func(context.Context, clients.PaymentsRequest) (*clients.PaymentResponse, error) {
			return &clients.PaymentResponse{ResultCode: "Refused", RefusalReason: "Not enough balance"}, nil
		},
	}
	router := setupRouter(t, checkout, nil, nil)

	w := postJSON(router, "/api/initiatePayment", `{"paymentMethod":{"type":"ideal"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"resultCode":"Refused","redirect":"/failed"}`, w.Body.String())
}

func TestInitiatePayment_MissingMethodType(t *testing.T) {
	called := false
	checkout := &mockCheckout{
		paymentsFn: func(context.Context, clients.PaymentsRequest) (*clients.PaymentResponse, error) {
			called = true
			return nil, nil
		},
	}
	router := setupRouter(t, checkout, nil, nil)

	w := postJSON(router, "/api/initiatePayment", `{"paymentMethod":{}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.KindValidation, decodeError(t, w).Kind)
	assert.False(t, called)
}

func TestInitiatePayment_MalformedBody(t *testing.T) {
	router := setupRouter(t, &mockCheckout{}, nil, nil)

	w := postJSON(router, "/api/initiatePayment", `{"paymentMethod":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.KindValidation, decodeError(t, w).Kind)
}

func TestInitiatePayment_ProviderFailure(t *testing.T) {
	checkout := &mockCheckout{
		paymentsFn: func(context.Context, clients.PaymentsRequest) (*clients.PaymentResponse, error) {
			return nil, upstreamFailure
		},
	}
	publisher := &recordingPublisher{}
	router := setupRouter(t, checkout, publisher, nil)

	w := postJSON(router, "/api/initiatePayment", `{"paymentMethod":{"type":"scheme"}}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, models.KindUpstream, decodeError(t, w).Kind)
	assert.Empty(t, publisher.events)
}

func TestInitiatePayment_PublishFailureIsIgnored(t *testing.T) {
	publisher := &recordingPublisher{err: errors.New("broker unavailable")}
	router := setupRouter(t, &mockCheckout{}, publisher, nil)

	w := postJSON(router, "/api/initiatePayment", `{"paymentMethod":{"type":"scheme"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, publisher.events, 1)
}

func TestSubmitAdditionalDetails(t *testing.T) {
	var received clients.PaymentDetailsRequest
	checkout := &mockCheckout{
		paymentsDetailsFn: func(_ context.Context, req clients.PaymentDetailsRequest) (*clients.PaymentResponse, error) {
			received = req
			return &clients.PaymentResponse{ResultCode: "Received", MerchantReference: "checkout-1"}, nil
		},
	}
	publisher := &recordingPublisher{}
	router := setupRouter(t, checkout, publisher, nil)

	w := postJSON(router, "/api/submitAdditionalDetails",
		`{"details":{"threeDSResult":"abc"},"paymentData":"pd-1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"resultCode":"Received","redirect":"/pending"}`, w.Body.String())
	assert.Equal(t, "abc", received.Details["threeDSResult"])
	assert.Equal(t, "pd-1", received.PaymentData)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, operationDetails, publisher.events[0].Operation)
	assert.Equal(t, "checkout-1", publisher.events[0].Reference)
	assert.Equal(t, "pending", publisher.events[0].Target)
}

func TestSubmitAdditionalDetails_MissingDetails(t *testing.T) {
	router := setupRouter(t, &mockCheckout{}, nil, nil)

	w := postJSON(router, "/api/submitAdditionalDetails", `{"paymentData":"pd-1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.KindValidation, decodeError(t, w).Kind)
}

func TestHandleRedirectGet(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"redirectResult", "?redirectResult=abc", `"redirectResult": "abc"`},
		{"payload", "?payload=xyz", `"payload": "xyz"`},
		{"redirectResult wins", "?payload=xyz&redirectResult=abc", `"redirectResult": "abc"`},
		{"neither", "", `"": ""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(t, &mockCheckout{}, nil, nil)

			w := serve(router, httptest.NewRequest(http.MethodGet, "/api/handleShopperRedirect"+tt.query, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestHandleRedirectGet_EscapesScript(t *testing.T) {
	router := setupRouter(t, &mockCheckout{}, nil, nil)

	query := url.Values{"redirectResult": {`</script><script>alert(1)</script>`}}
	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/handleShopperRedirect?"+query.Encode(), nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<script>alert(1)")
}

func TestHandleRedirectPost_IssuerCallback(t *testing.T) {
	called := false
	checkout := &mockCheckout{
		paymentsDetailsFn: func(context.Context, clients.PaymentDetailsRequest) (*clients.PaymentResponse, error) {
			called = true
			return nil, nil
		},
	}
	router := setupRouter(t, checkout, nil, nil)

	w := postForm(router, "/api/handleShopperRedirect", "MD=md-value&PaRes=pares-value")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"MD": "md-value"`)
	assert.Contains(t, body, `"PaRes": "pares-value"`)
	assert.False(t, called)
}

func TestHandleRedirectPost_IssuerCallbackTooFewValues(t *testing.T) {
	router := setupRouter(t, &mockCheckout{}, nil, nil)

	w := postForm(router, "/api/handleShopperRedirect", "MD=md-value")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.KindValidation, decodeError(t, w).Kind)
}

func TestHandleRedirectPost_RoutesResultCode(t *testing.T) {
	tests := []struct {
		resultCode string
		location   string
	}{
		{"Authorised", "/success"},
		{"Pending", "/pending"},
		{"Refused", "/failed"},
		{"Received", "/error"},
		{"Cancelled", "/error"},
		{"Error", "/error"},
		{"", "/error"},
	}

	for _, tt := range tests {
		t.Run(tt.resultCode, func(t *testing.T) {
			var received clients.PaymentDetailsRequest
			checkout := &mockCheckout{
				paymentsDetailsFn: func(_ context.Context, req clients.PaymentDetailsRequest) (*clients.PaymentResponse, error) {
					received = req
					return &clients.PaymentResponse{ResultCode: tt.resultCode}, nil
				},
			}
			router := setupRouter(t, checkout, nil, nil)

			form := url.Values{
				"paymentData": {"pd-1"},
				"details":     {`{"MD":"md-value","PaRes":"pares-value"}`},
			}
			w := postForm(router, "/api/handleShopperRedirect", form.Encode())

			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
			assert.Equal(t, "pd-1", received.PaymentData)
			assert.Equal(t, "md-value", received.Details["MD"])
		})
	}
}

func TestHandleRedirectPost_JSONBody(t *testing.T) {
	var received clients.PaymentDetailsRequest
	checkout := &mockCheckout{
		paymentsDetailsFn: func(_ context.Context, req clients.PaymentDetailsRequest) (*clients.PaymentResponse, error) {
			received = req
			return &clients.PaymentResponse{ResultCode: "Authorised"}, nil
		},
	}
	publisher := &recordingPublisher{}
	router := setupRouter(t, checkout, publisher, nil)

	w := postJSON(router, "/api/handleShopperRedirect", `{"paymentData":"pd-1","details":{"redirectResult":"abc"}}`)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/success", w.Header().Get("Location"))
	assert.Equal(t, "abc", received.Details["redirectResult"])
	require.Len(t, publisher.events, 1)
	assert.Equal(t, "success", publisher.events[0].Target)
}

func TestHandleRedirectPost_ProviderFailure(t *testing.T) {
	checkout := &mockCheckout{
		paymentsDetailsFn: func(context.Context, clients.PaymentDetailsRequest) (*clients.PaymentResponse, error) {
			return nil, upstreamFailure
		},
	}
	router := setupRouter(t, checkout, nil, nil)

	w := postForm(router, "/api/handleShopperRedirect", "paymentData=pd-1&redirectResult=abc")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/error", w.Header().Get("Location"))
}

func TestFavicon(t *testing.T) {
	router := setupRouter(t, &mockCheckout{}, nil, nil)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/x-icon", w.Header().Get("Content-Type"))
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x00}, w.Body.Bytes())
}

func TestFavicon_NotFound(t *testing.T) {
	router := setupRouter(t, &mockCheckout{}, nil, fstest.MapFS{})

	w := serve(router, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	errBody := decodeError(t, w)
	assert.Equal(t, models.KindAssetNotFound, errBody.Kind)
	assert.NotEmpty(t, errBody.Message)
}

func TestFavicon_ReadError(t *testing.T) {
	router := setupRouter(t, &mockCheckout{}, nil, deniedFS{})

	w := serve(router, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	errBody := decodeError(t, w)
	assert.Equal(t, models.KindAssetRead, errBody.Kind)
	assert.NotEmpty(t, errBody.Message)
}

func TestStaticFiles(t *testing.T) {
	router := setupRouter(t, &mockCheckout{}, nil, nil)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/static/css/application.css", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "margin")
}

func TestValuesArray(t *testing.T) {
	got, err := valuesArray([][2]string{{"MD", "a\"b"}, {"PaRes", "c"}})
	require.NoError(t, err)
	assert.Equal(t, "{\n\"MD\": \"a\\\"b\",\n\"PaRes\": \"c\"\n}", string(got))
}

func TestPositionalValues(t *testing.T) {
	values, err := positionalValues("b=first&a=second&c=third", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, values)

	_, err = positionalValues("", 2)
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
