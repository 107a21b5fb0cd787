package strategy

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"golang-insider-scanner/internal/scanner/dto"
)

var keyEscaper = strings.NewReplacer(`\`, `\\`, `|`, `\|`)

// hashIdentifier is the md5 hex of the escaped, pipe-joined natural key.
func hashIdentifier(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = keyEscaper.Replace(p)
	}
	sum := md5.Sum([]byte(strings.Join(escaped, "|")))
	return hex.EncodeToString(sum[:])
}

// CongressIdentity identifies a disclosure by trader, ticker, date, type and amount bucket.
func CongressIdentity(t dto.CongressTrade) string {
	return hashIdentifier("congress", t.Representative, t.Ticker, t.TransactionDate, t.Type, t.Amount)
}

// FilingIdentity identifies a Form 4 transaction by accession, owner, issuer, code and shares.
func FilingIdentity(t dto.InsiderTransaction) string {
	return hashIdentifier("sec",
		t.AccessionNo,
		t.ReportingOwner.Name,
		t.Issuer.TradingSymbol,
		t.TransactionCode,
		strconv.FormatFloat(float64(t.TransactionShares), 'f', -1, 64),
	)
}

// MarketIdentity identifies a prediction market's claim about one ticker.
func MarketIdentity(m dto.PredictionMarket, ticker string) string {
	return hashIdentifier("polymarket", m.ID, m.DisplayTitle(), ticker)
}
