package strategy

import (
	"testing"

	"golang-insider-scanner/internal/scanner/dto"

	"github.com/stretchr/testify/assert"
)

func TestCongressIdentity_StableAndDistinct(t *testing.T) {
	trade := dto.CongressTrade{Representative: "Nancy Pelosi", Ticker: "NVDA", TransactionDate: "2026-10-10", Type: "purchase", Amount: "$250,001 - $500,000"}

	assert.Equal(t, CongressIdentity(trade), CongressIdentity(trade))
	assert.Len(t, CongressIdentity(trade), 32)

	other := trade
	other.Amount = "$500,001 - $1,000,000"
	assert.NotEqual(t, CongressIdentity(trade), CongressIdentity(other))
}

func TestHashIdentifier_SeparatorInFieldsDoesNotCollide(t *testing.T) {
	assert.NotEqual(t, hashIdentifier("a|b", "c"), hashIdentifier("a", "b|c"))
	assert.NotEqual(t, hashIdentifier(`a\`, "|b"), hashIdentifier("a", `\|b`))
}

func TestFilingIdentity_FormatsShares(t *testing.T) {
	a := dto.InsiderTransaction{AccessionNo: "1", TransactionCode: "P", TransactionShares: 10000}
	b := a
	b.TransactionShares = 10000.5

	assert.Equal(t, hashIdentifier("sec", "1", "", "", "P", "10000"), FilingIdentity(a))
	assert.NotEqual(t, FilingIdentity(a), FilingIdentity(b))
}

func TestSourceIdentitiesNeverShareNamespace(t *testing.T) {
	trade := dto.CongressTrade{Ticker: "NVDA"}
	filing := dto.InsiderTransaction{Issuer: dto.InsiderIssuer{TradingSymbol: "NVDA"}}
	mkt := dto.PredictionMarket{ID: "NVDA"}

	ids := map[string]struct{}{
		CongressIdentity(trade):     {},
		FilingIdentity(filing):      {},
		MarketIdentity(mkt, "NVDA"): {},
	}
	assert.Len(t, ids, 3)
}

func TestMarketIdentity_DistinctPerTicker(t *testing.T) {
	mkt := dto.PredictionMarket{ID: "m-1", Question: "Will NVDA or AMD win the contract?"}

	assert.Equal(t, hashIdentifier("polymarket", "m-1", mkt.DisplayTitle(), "NVDA"), MarketIdentity(mkt, "NVDA"))
	assert.NotEqual(t, MarketIdentity(mkt, "NVDA"), MarketIdentity(mkt, "AMD"))
}
