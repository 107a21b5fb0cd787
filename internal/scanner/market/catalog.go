package market

import (
	"regexp"
	"sort"
	"strings"
)

// Asset is one tradable instrument in the catalog.
type Asset struct {
	Ticker  string
	Company string
}

var catalog = map[string]string{
	"AAPL":  "Apple",
	"MSFT":  "Microsoft",
	"GOOGL": "Google",
	"AMZN":  "Amazon",
	"NVDA":  "Nvidia",
	"META":  "Meta",
	"TSLA":  "Tesla",
	"JPM":   "JPMorgan",
	"V":     "Visa",
	"MA":    "Mastercard",
	"DIS":   "Disney",
	"NFLX":  "Netflix",
	"PYPL":  "PayPal",
	"AMD":   "AMD",
	"INTC":  "Intel",
	"BA":    "Boeing",
	"COIN":  "Coinbase",
	"UBER":  "Uber",
	"SHOP":  "Shopify",
	"SQ":    "Block",
	"BTC":   "Bitcoin",
	"ETH":   "Ethereum",
	"SOL":   "Solana",
	"ADA":   "Cardano",
}

var nonTickerChars = regexp.MustCompile(`[^A-Z.]`)

// NormalizeTicker maps a raw symbol to its catalog ticker. The second return is false when
// the cleaned symbol is not in the catalog.
func NormalizeTicker(raw string) (string, bool) {
	clean := nonTickerChars.ReplaceAllString(strings.ToUpper(raw), "")
	if clean == "" {
		return "", false
	}
	if _, ok := catalog[clean]; !ok {
		return "", false
	}
	return clean, true
}

// CompanyName returns the company name for a catalog ticker.
func CompanyName(ticker string) string {
	return catalog[ticker]
}

// Assets returns the catalog sorted by ticker.
func Assets() []Asset {
	out := make([]Asset, 0, len(catalog))
	for t, c := range catalog {
		out = append(out, Asset{Ticker: t, Company: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out
}
