package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// CongressTrade is one record of the House disclosure feed.
type CongressTrade struct {
	Representative   string `json:"representative"`
	Ticker           string `json:"ticker"`
	AssetDescription string `json:"asset_description"`
	TransactionDate  string `json:"transaction_date"`
	DisclosureDate   string `json:"disclosure_date"`
	Type             string `json:"type"`
	Amount           string `json:"amount"`
	Owner            string `json:"owner"`
	District         string `json:"district"`
}

// InsiderRelationship describes the reporting owner's role at the issuer.
type InsiderRelationship struct {
	IsDirector   bool   `json:"isDirector"`
	IsOfficer    bool   `json:"isOfficer"`
	OfficerTitle string `json:"officerTitle"`
	IsTenPercent bool   `json:"isTenPercentOwner"`
}

type InsiderOwner struct {
	Name         string              `json:"name"`
	Relationship InsiderRelationship `json:"relationship"`
}

type InsiderIssuer struct {
	Name          string `json:"name"`
	TradingSymbol string `json:"tradingSymbol"`
}

// InsiderTransaction is one flattened Form 4 transaction from the insider trading API.
type InsiderTransaction struct {
	AccessionNo              string        `json:"accessionNo"`
	FiledAt                  string        `json:"filedAt"`
	Issuer                   InsiderIssuer `json:"issuer"`
	ReportingOwner           InsiderOwner  `json:"reportingOwner"`
	TransactionDate          string        `json:"transactionDate"`
	TransactionCode          string        `json:"transactionCode"`
	TransactionShares        FlexFloat     `json:"transactionShares"`
	TransactionPricePerShare FlexFloat     `json:"transactionPricePerShare"`
}

// Value returns shares times price.
func (t InsiderTransaction) Value() float64 {
	return float64(t.TransactionShares) * float64(t.TransactionPricePerShare)
}

// InsiderTradingQuery is the request body of the insider trading search endpoint.
type InsiderTradingQuery struct {
	Query string               `json:"query"`
	From  int                  `json:"from"`
	Size  int                  `json:"size"`
	Sort  []map[string]SortDir `json:"sort,omitempty"`
}

type SortDir struct {
	Order string `json:"order"`
}

type InsiderTradingResponse struct {
	Transactions []InsiderTransaction `json:"transactions"`
}

// PredictionMarket is one market listing from the prediction market API.
type PredictionMarket struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Question string    `json:"question"`
	Slug     string    `json:"slug"`
	Volume   FlexFloat `json:"volume"`
	Active   bool      `json:"active"`
	EndDate  string    `json:"endDate"`
}

// DisplayTitle returns the market title, falling back to its question text.
func (m PredictionMarket) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.Question
}

// FlexFloat decodes a JSON number or a numeric string. Anything else decodes to 0.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}
