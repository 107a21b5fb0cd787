package strategy

import (
	"testing"

	"golang-insider-scanner/internal/scanner/dto"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTransactionType(t *testing.T) {
	tests := []struct {
		text string
		want dto.Action
		ok   bool
	}{
		{text: "purchase", want: dto.ActionBuy, ok: true},
		{text: "Purchase", want: dto.ActionBuy, ok: true},
		{text: "sale_full", want: dto.ActionSell, ok: true},
		{text: "Sale (Partial)", want: dto.ActionSell, ok: true},
		{text: "SELL", want: dto.ActionSell, ok: true},
		{text: "buy", want: dto.ActionBuy, ok: true},
		{text: "purchase then sale", want: dto.ActionSell, ok: true},
		{text: "exchange", ok: false},
		{text: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ClassifyTransactionType(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyMarketTitle(t *testing.T) {
	tests := []struct {
		title string
		want  dto.Action
		ok    bool
	}{
		{title: "Will Nvidia hit $200 by December?", want: dto.ActionBuy, ok: true},
		{title: "Will Tesla rise or fall below $300?", want: dto.ActionBuy, ok: true},
		{title: "Tesla to fall below $150?", want: dto.ActionSell, ok: true},
		{title: "Will Apple stock DROP this week?", want: dto.ActionSell, ok: true},
		{title: "Will Apple miss earnings?", want: dto.ActionSell, ok: true},
		{title: "Apple earnings overview", ok: false},
		{title: "Will Meta announce a dropship program?", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, ok := classifyMarketTitle(tt.title)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReferencedTickers_WholeWord(t *testing.T) {
	assert.Equal(t, []string{"NVDA"}, referencedTickers("Will Nvidia reach $1T?"))
	assert.Equal(t, []string{"NVDA"}, referencedTickers("NVDA above 150?"))
	assert.Equal(t, []string{"BTC", "ETH"}, referencedTickers("Bitcoin and ETH both rise?"))
	assert.Empty(t, referencedTickers("Metaverse tokens rise"))
	assert.Empty(t, referencedTickers("Applesauce prices rise"))
}

func TestMatchPowerTrader(t *testing.T) {
	names := []string{"Nancy Pelosi", "Ro Khanna", " "}
	assert.True(t, matchPowerTrader("Hon. Nancy Pelosi", names))
	assert.True(t, matchPowerTrader("RO KHANNA", names))
	assert.False(t, matchPowerTrader("Ron Wyden", names))
	assert.False(t, matchPowerTrader("", names))
}
