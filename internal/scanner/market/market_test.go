package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{name: "exact", raw: "NVDA", want: "NVDA", ok: true},
		{name: "lower case", raw: "nvda", want: "NVDA", ok: true},
		{name: "currency noise", raw: " $aapl ", want: "AAPL", ok: true},
		{name: "digits stripped", raw: "MSFT1", want: "MSFT", ok: true},
		{name: "single letter", raw: "v", want: "V", ok: true},
		{name: "unknown", raw: "XYZ", ok: false},
		{name: "dot kept", raw: "BRK.B", ok: false},
		{name: "empty", raw: "", ok: false},
		{name: "only noise", raw: "--", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeTicker(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTicker_EveryCatalogEntry(t *testing.T) {
	for _, a := range Assets() {
		got, ok := NormalizeTicker("(" + a.Ticker + ")")
		assert.True(t, ok, a.Ticker)
		assert.Equal(t, a.Ticker, got)
		assert.NotEmpty(t, CompanyName(a.Ticker))
	}
}

func TestParseAmount(t *testing.T) {
	tests := map[string]float64{
		"$1,001 - $15,000":         8000,
		"$15,001 - $50,000":        32500,
		"$50,001 - $100,000":       75000,
		"$100,001 - $250,000":      175000,
		"$250,001 - $500,000":      375000,
		"$500,001 - $1,000,000":    750000,
		"$1,000,001 - $5,000,000":  3000000,
		"Over $50,000,000":         50000000,
		"$5,000,001 - $25,000,000": 0,
		"":                         0,
		"unknown":                  0,
	}
	for bucket, want := range tests {
		assert.Equal(t, want, ParseAmount(bucket), bucket)
	}
}
