package models

import (
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
}

// Cart is the fixed demo basket shown on the cart page and charged at checkout.
type Cart struct {
	Items []CartItem `json:"items"`
}

// DefaultCart returns the demo basket.
func DefaultCart() Cart {
	return Cart{
		Items: []CartItem{
			{ID: "sunglasses", Description: "Sunglasses", Quantity: 1, UnitPrice: 5000},
			{ID: "headphones", Description: "Headphones", Quantity: 1, UnitPrice: 5000},
		},
	}
}

// Total returns the cart total in minor units.
func (c Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Quantity * item.UnitPrice
	}
	return total
}

// LineItems converts the cart contents into provider line items.
func (c Cart) LineItems() []LineItem {
	items := make([]LineItem, len(c.Items))
	for i, item := range c.Items {
		items[i] = LineItem{
			ID:                 item.ID,
			Description:        item.Description,
			Quantity:           item.Quantity,
			AmountIncludingTax: item.UnitPrice,
		}
	}
	return items
}

var zeroDecimalCurrencies = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"IDR": 0,
	"CLP": 0,
}

// FormatAmount renders a minor-unit value as a decimal string, e.g. 10000 EUR -> "100.00".
func FormatAmount(value int64, currency string) string {
	exp, ok := zeroDecimalCurrencies[currency]
	if !ok {
		exp = 2
	}
	return decimal.New(value, -exp).StringFixed(exp)
}
