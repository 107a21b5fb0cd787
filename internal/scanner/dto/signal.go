package dto

// SignalSource names the origin of a candidate signal.
type SignalSource string

const (
	SourceCongress       SignalSource = "Congress"
	SourceSECForm4       SignalSource = "SEC Form 4"
	SourceInsiderCluster SignalSource = "Insider Cluster"
	SourcePolymarket     SignalSource = "Polymarket"
)

// Action is the direction of a single candidate signal.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
)

// AlertAction is the label of an aggregated alert.
type AlertAction string

const (
	AlertBuy        AlertAction = "BUY"
	AlertSell       AlertAction = "SELL"
	AlertStrongBuy  AlertAction = "STRONG BUY"
	AlertStrongSell AlertAction = "STRONG SELL"
)

// IsBuy reports whether the label is bullish.
func (a AlertAction) IsBuy() bool {
	return a == AlertBuy || a == AlertStrongBuy
}

// Candidate is one source's directional claim about a ticker.
type Candidate struct {
	Source        SignalSource `json:"source"`
	Ticker        string       `json:"ticker"`
	Action        Action       `json:"action"`
	Confidence    int          `json:"confidence"`
	Amount        float64      `json:"amount"`
	Trader        string       `json:"trader,omitempty"`
	IsPowerTrader bool         `json:"is_power_trader"`
	IsCluster     bool         `json:"is_cluster"`
	ClusterSize   int          `json:"cluster_size,omitempty"`
	IsPrimary     bool         `json:"is_primary"`
}

// NuclearAlert is an aggregated, threshold-passing claim for one ticker.
type NuclearAlert struct {
	Ticker           string      `json:"ticker"`
	Action           AlertAction `json:"action"`
	Confidence       int         `json:"confidence"`
	PrimarySources   []string    `json:"primary_sources"`
	SecondarySources []string    `json:"secondary_sources"`
	PowerTraders     []string    `json:"power_traders"`
	Clusters         []Candidate `json:"clusters"`
	Buys             []Candidate `json:"buys"`
	Sells            []Candidate `json:"sells"`
	BuyEvidence      float64     `json:"buy_evidence"`
	SellEvidence     float64     `json:"sell_evidence"`
	EvidenceHash     string      `json:"evidence_hash"`
}

// Evidence returns buys followed by sells.
func (a NuclearAlert) Evidence() []Candidate {
	out := make([]Candidate, 0, len(a.Buys)+len(a.Sells))
	out = append(out, a.Buys...)
	return append(out, a.Sells...)
}
