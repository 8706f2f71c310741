package constants

import "strings"

// CurrencyCodes holds the ISO 4217 codes recognized in document text.
var CurrencyCodes = map[string]struct{}{
	"USD": {}, "EUR": {}, "GBP": {}, "SAR": {}, "AED": {}, "QAR": {},
	"KWD": {}, "BHD": {}, "OMR": {}, "EGP": {}, "JOD": {}, "INR": {},
	"PKR": {}, "CNY": {}, "JPY": {}, "CHF": {}, "CAD": {}, "AUD": {},
}

// CurrencySymbols maps currency symbols to their most common code.
var CurrencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
	"₹": "INR",
	"﷼": "SAR",
}

// IsCurrencyCode reports whether s (any case) is a recognized 3-letter code.
func IsCurrencyCode(s string) bool {
	_, ok := CurrencyCodes[strings.ToUpper(strings.TrimSpace(s))]
	return ok
}
