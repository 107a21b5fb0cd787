package market

import "strings"

var amountBuckets = map[string]float64{
	"$1,001 - $15,000":        8000,
	"$15,001 - $50,000":       32500,
	"$50,001 - $100,000":      75000,
	"$100,001 - $250,000":     175000,
	"$250,001 - $500,000":     375000,
	"$500,001 - $1,000,000":   750000,
	"$1,000,001 - $5,000,000": 3000000,
	"Over $50,000,000":        50000000,
}

// ParseAmount returns the representative value of a disclosure range bucket, or 0.
func ParseAmount(bucket string) float64 {
	return amountBuckets[strings.TrimSpace(bucket)]
}
