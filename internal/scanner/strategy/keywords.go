package strategy

import (
	"regexp"
	"strings"

	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/market"
)

type keywordRule struct {
	keyword string
	action  dto.Action
}

// transactionTypeRules are checked in order; sale vocabulary wins over purchase vocabulary.
var transactionTypeRules = []keywordRule{
	{keyword: "sale", action: dto.ActionSell},
	{keyword: "sell", action: dto.ActionSell},
	{keyword: "purchase", action: dto.ActionBuy},
	{keyword: "buy", action: dto.ActionBuy},
}

// ClassifyTransactionType maps free-text disclosure types by case-insensitive substring.
func ClassifyTransactionType(text string) (dto.Action, bool) {
	lower := strings.ToLower(text)
	for _, rule := range transactionTypeRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.action, true
		}
	}
	return "", false
}

var filingCodes = map[string]dto.Action{
	"P": dto.ActionBuy,
	"S": dto.ActionSell,
}

var cLevelTitle = regexp.MustCompile(`(?i)CEO|CFO|COO|President`)

type directionRule struct {
	action  dto.Action
	pattern *regexp.Regexp
}

// marketDirectionRules are checked in order; bullish wins when a title matches both.
var marketDirectionRules = []directionRule{
	{action: dto.ActionBuy, pattern: wholeWords("reach", "hit", "above", "over", "exceed", "rise")},
	{action: dto.ActionSell, pattern: wholeWords("below", "fall", "drop", "decline", "miss")},
}

func classifyMarketTitle(title string) (dto.Action, bool) {
	for _, rule := range marketDirectionRules {
		if rule.pattern.MatchString(title) {
			return rule.action, true
		}
	}
	return "", false
}

func wholeWords(words ...string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

type assetMatcher struct {
	ticker  string
	pattern *regexp.Regexp
}

var assetMatchers = buildAssetMatchers()

func buildAssetMatchers() []assetMatcher {
	assets := market.Assets()
	out := make([]assetMatcher, 0, len(assets))
	for _, a := range assets {
		out = append(out, assetMatcher{ticker: a.Ticker, pattern: wholeWords(a.Ticker, a.Company)})
	}
	return out
}

// referencedTickers returns every catalog ticker whose symbol or company name appears as a whole word.
func referencedTickers(title string) []string {
	var out []string
	for _, m := range assetMatchers {
		if m.pattern.MatchString(title) {
			out = append(out, m.ticker)
		}
	}
	return out
}
