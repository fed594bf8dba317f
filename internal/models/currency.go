package models

// Currency is one entry in the fixed conversion table. Rates are static
// constants relative to the USD base unit; they are not fetched live.
type Currency struct {
	Code   string  `json:"code"`
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"` // units per 1 USD
}

// Currencies is the closed table of supported currencies. USD is the base
// (rate 1) and every conversion is routed through it.
var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Rate: 1},
	{Code: "EUR", Symbol: "€", Rate: 0.92},
	{Code: "GBP", Symbol: "£", Rate: 0.79},
	{Code: "JPY", Symbol: "¥", Rate: 149.50},
	{Code: "CAD", Symbol: "C$", Rate: 1.36},
	{Code: "AUD", Symbol: "A$", Rate: 1.53},
	{Code: "INR", Symbol: "₹", Rate: 83.12},
}

// CurrencyByCode looks up a currency in the table.
func CurrencyByCode(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// IsKnownCurrency reports whether code appears in the currency table.
func IsKnownCurrency(code string) bool {
	_, ok := CurrencyByCode(code)
	return ok
}

// CurrencyRate returns the conversion rate for code, falling back to the
// USD base rate for unknown codes.
func CurrencyRate(code string) float64 {
	if c, ok := CurrencyByCode(code); ok {
		return c.Rate
	}
	return 1
}
