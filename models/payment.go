package models

// Amount is a monetary value in minor units (cents for EUR).
type Amount struct {
	Currency string `json:"currency"`
	Value    int64  `json:"value"`
}

// LineItem is a single invoice line sent along with open-invoice payment methods.
type LineItem struct {
	ID                 string `json:"id,omitempty"`
	Description        string `json:"description"`
	Quantity           int64  `json:"quantity"`
	AmountIncludingTax int64  `json:"amountIncludingTax"`
}

// PaymentSubmission is the generic payment request built from a checkout submission
// before it is forwarded to the provider.
type PaymentSubmission struct {
	Amount         Amount            `json:"amount"`
	MethodType     string            `json:"methodType"`
	CountryCode    string            `json:"countryCode"`
	ShopperLocale  string            `json:"shopperLocale,omitempty"`
	ShopperEmail   string            `json:"shopperEmail,omitempty"`
	Origin         string            `json:"origin,omitempty"`
	LineItems      []LineItem        `json:"lineItems,omitempty"`
	AdditionalData map[string]string `json:"additionalData,omitempty"`
}

// CheckoutStateData is the body the Drop-in posts to /api/initiatePayment.
type CheckoutStateData struct {
	PaymentMethod  map[string]any `json:"paymentMethod"`
	BrowserInfo    map[string]any `json:"browserInfo,omitempty"`
	BillingAddress map[string]any `json:"billingAddress,omitempty"`
}

// MethodType returns the payment method type tag chosen by the shopper.
func (s CheckoutStateData) MethodType() string {
	if s.PaymentMethod == nil {
		return ""
	}
	t, _ := s.PaymentMethod["type"].(string)
	return t
}

// DetailsSubmission is the body of an additional-details call.
type DetailsSubmission struct {
	Details     map[string]any `json:"details"`
	PaymentData string         `json:"paymentData,omitempty"`
}

// PaymentResult is what the browser receives after a payments or details call.
type PaymentResult struct {
	ResultCode string         `json:"resultCode"`
	Action     map[string]any `json:"action,omitempty"`
	Redirect   string         `json:"redirect,omitempty"`
}

// PaymentMethodsRequestBody is the optional body of /api/getPaymentMethods.
type PaymentMethodsRequestBody struct {
	Integration string `json:"integration"`
}
