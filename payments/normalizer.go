package payments

import (
	"strings"

	"checkout-server/models"
)

const (
	DefaultCountryCode = "NL"
	DefaultCurrency    = "EUR"
	KlarnaLocale       = "en_US"
)

// rule is one row of the method-type override table.
type rule struct {
	name  string
	match func(methodType string) bool
	apply func(n *Normalizer, s *models.PaymentSubmission)
}

// rules are evaluated in order and the first match wins.
var rules = []rule{
	{
		name:  "dotpay",
		match: func(t string) bool { return strings.Contains(t, "dotpay") },
		apply: func(_ *Normalizer, s *models.PaymentSubmission) {
			s.Amount.Currency = "PLN"
			s.CountryCode = "PL"
		},
	},
	{
		name:  "alipay",
		match: func(t string) bool { return t == "alipay" },
		apply: func(_ *Normalizer, s *models.PaymentSubmission) {
			s.CountryCode = "CN"
		},
	},
	{
		name:  "klarna",
		match: func(t string) bool { return strings.Contains(t, "klarna") },
		apply: func(n *Normalizer, s *models.PaymentSubmission) {
			s.ShopperEmail = n.shopperEmail
			s.ShopperLocale = KlarnaLocale
			s.LineItems = n.cart.LineItems()
		},
	},
	{
		name:  "germany",
		match: func(t string) bool { return t == "directEbanking" || t == "giropay" },
		apply: func(_ *Normalizer, s *models.PaymentSubmission) {
			s.CountryCode = "DE"
		},
	},
	{
		name:  "scheme",
		match: func(t string) bool { return t == "scheme" },
		apply: func(n *Normalizer, s *models.PaymentSubmission) {
			s.AdditionalData["allow3DS2"] = "true"
			s.Origin = n.origin
		},
	},
	{
		name:  "united-states",
		match: func(t string) bool { return t == "ach" || t == "paypal" },
		apply: func(_ *Normalizer, s *models.PaymentSubmission) {
			s.CountryCode = "US"
		},
	},
}

// Normalizer applies the per-method field overrides to a payment submission.
type Normalizer struct {
	shopperEmail string
	origin       string
	cart         models.Cart
}

func NewNormalizer(shopperEmail, origin string, cart models.Cart) *Normalizer {
	return &Normalizer{
		shopperEmail: shopperEmail,
		origin:       origin,
		cart:         cart,
	}
}

// Normalize returns a copy of the submission with the country, currency and
// method-specific fields set. The input is never modified.
func (n *Normalizer) Normalize(sub models.PaymentSubmission) (models.PaymentSubmission, error) {
	out := sub
	out.MethodType = strings.TrimSpace(sub.MethodType)
	if out.MethodType == "" {
		return models.PaymentSubmission{}, &models.ValidationError{Field: "methodType", Message: "payment method type is required"}
	}
	if out.Amount.Value < 0 {
		return models.PaymentSubmission{}, &models.ValidationError{Field: "amount.value", Message: "amount must not be negative"}
	}

	out.AdditionalData = make(map[string]string, len(sub.AdditionalData)+1)
	for k, v := range sub.AdditionalData {
		out.AdditionalData[k] = v
	}
	if sub.LineItems != nil {
		out.LineItems = append([]models.LineItem(nil), sub.LineItems...)
	}

	out.CountryCode = DefaultCountryCode
	out.Amount.Currency = DefaultCurrency

	if r, ok := matchRule(out.MethodType); ok {
		r.apply(n, &out)
	}
	return out, nil
}

// Rule names the override rule a method type resolves to, or "default".
func (n *Normalizer) Rule(methodType string) string {
	if r, ok := matchRule(strings.TrimSpace(methodType)); ok {
		return r.name
	}
	return "default"
}

// MethodsRequest derives the country and amount used to list payment methods
// for an integration type, using the same override table.
func (n *Normalizer) MethodsRequest(integration string) (countryCode string, amount models.Amount) {
	sub := models.PaymentSubmission{
		MethodType: integration,
		Amount:     models.Amount{Value: n.cart.Total()},
	}
	out, err := n.Normalize(sub)
	if err != nil {
		return DefaultCountryCode, models.Amount{Currency: DefaultCurrency, Value: n.cart.Total()}
	}
	return out.CountryCode, out.Amount
}

func matchRule(methodType string) (rule, bool) {
	for _, r := range rules {
		if r.match(methodType) {
			return r, true
		}
	}
	return rule{}, false
}
