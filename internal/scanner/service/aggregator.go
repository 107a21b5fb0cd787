package service

import (
	"crypto/md5"
	"encoding/hex"
	"math"
	"sort"
	"strings"

	"golang-insider-scanner/internal/scanner/config"
	"golang-insider-scanner/internal/scanner/dto"
)

// missingTrader stands in for candidates without a trader in the evidence hash.
const missingTrader = "-"

// AggregationPolicy holds the tunable constants of Aggregate.
type AggregationPolicy struct {
	NuclearConfidence  float64
	PrimaryWeight      float64
	SecondaryWeight    float64
	MinDirectionRatio  float64
	PowerTraderBonus   float64
	ClusterBonus       float64
	MultiPrimaryBonus  float64
	ConfidenceCap      float64
	StrongNetThreshold float64
}

// DefaultAggregationPolicy returns the default policy constants.
func DefaultAggregationPolicy() AggregationPolicy {
	return AggregationPolicy{
		NuclearConfidence:  85,
		PrimaryWeight:      1.0,
		SecondaryWeight:    0.3,
		MinDirectionRatio:  0.6,
		PowerTraderBonus:   10,
		ClusterBonus:       15,
		MultiPrimaryBonus:  10,
		ConfidenceCap:      99,
		StrongNetThreshold: 150,
	}
}

// PolicyFromConfig maps the policy config block.
func PolicyFromConfig(p config.Policy) AggregationPolicy {
	return AggregationPolicy{
		NuclearConfidence:  p.NuclearConfidence,
		PrimaryWeight:      p.PrimaryWeight,
		SecondaryWeight:    p.SecondaryWeight,
		MinDirectionRatio:  p.MinDirectionRatio,
		PowerTraderBonus:   p.PowerTraderBonus,
		ClusterBonus:       p.ClusterBonus,
		MultiPrimaryBonus:  p.MultiPrimaryBonus,
		ConfidenceCap:      p.ConfidenceCap,
		StrongNetThreshold: p.StrongNetThreshold,
	}
}

type tickerEvidence struct {
	buys, sells      []dto.Candidate
	primarySources   map[string]struct{}
	secondarySources map[string]struct{}
	powerTraders     map[string]struct{}
	clusters         []dto.Candidate
}

// Aggregate groups candidates by ticker and returns the alerts that clear the policy,
// ordered by confidence descending then ticker ascending. It does not modify its input.
func Aggregate(candidates []dto.Candidate, policy AggregationPolicy) []dto.NuclearAlert {
	byTicker := map[string]*tickerEvidence{}
	for _, c := range candidates {
		ev, ok := byTicker[c.Ticker]
		if !ok {
			ev = &tickerEvidence{
				primarySources:   map[string]struct{}{},
				secondarySources: map[string]struct{}{},
				powerTraders:     map[string]struct{}{},
			}
			byTicker[c.Ticker] = ev
		}

		switch c.Action {
		case dto.ActionBuy:
			ev.buys = append(ev.buys, c)
		case dto.ActionSell:
			ev.sells = append(ev.sells, c)
		default:
			continue
		}

		if c.IsPrimary {
			ev.primarySources[string(c.Source)] = struct{}{}
		} else {
			ev.secondarySources[string(c.Source)] = struct{}{}
		}
		if c.IsPowerTrader && c.Trader != "" {
			ev.powerTraders[c.Trader] = struct{}{}
		}
		if c.IsCluster {
			ev.clusters = append(ev.clusters, c)
		}
	}

	var alerts []dto.NuclearAlert
	for ticker, ev := range byTicker {
		if alert, ok := evaluateTicker(ticker, ev, policy); ok {
			alerts = append(alerts, alert)
		}
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Confidence != alerts[j].Confidence {
			return alerts[i].Confidence > alerts[j].Confidence
		}
		return alerts[i].Ticker < alerts[j].Ticker
	})
	return alerts
}

func evaluateTicker(ticker string, ev *tickerEvidence, policy AggregationPolicy) (dto.NuclearAlert, bool) {
	if len(ev.primarySources) == 0 {
		return dto.NuclearAlert{}, false
	}

	buyEvidence := weightedSum(ev.buys, policy)
	sellEvidence := weightedSum(ev.sells, policy)
	net := buyEvidence - sellEvidence
	total := buyEvidence + sellEvidence
	if total == 0 {
		return dto.NuclearAlert{}, false
	}
	if math.Abs(net)/total < policy.MinDirectionRatio {
		return dto.NuclearAlert{}, false
	}
	// A perfectly balanced ticker can only get here with a zero ratio gate.
	if net == 0 {
		return dto.NuclearAlert{}, false
	}

	confidence := total / float64(len(ev.buys)+len(ev.sells))
	if len(ev.powerTraders) > 0 {
		confidence += policy.PowerTraderBonus
	}
	if len(ev.clusters) > 0 {
		confidence += policy.ClusterBonus
	}
	if len(ev.primarySources) >= 2 {
		confidence += policy.MultiPrimaryBonus
	}
	confidence = math.Min(confidence, policy.ConfidenceCap)
	if confidence < policy.NuclearConfidence {
		return dto.NuclearAlert{}, false
	}

	action := dto.AlertBuy
	if net < 0 {
		action = dto.AlertSell
	}
	if math.Abs(net) > policy.StrongNetThreshold {
		if action == dto.AlertBuy {
			action = dto.AlertStrongBuy
		} else {
			action = dto.AlertStrongSell
		}
	}

	return dto.NuclearAlert{
		Ticker:           ticker,
		Action:           action,
		Confidence:       int(math.Round(confidence)),
		PrimarySources:   sortedKeys(ev.primarySources),
		SecondarySources: sortedKeys(ev.secondarySources),
		PowerTraders:     sortedKeys(ev.powerTraders),
		Clusters:         ev.clusters,
		Buys:             ev.buys,
		Sells:            ev.sells,
		BuyEvidence:      buyEvidence,
		SellEvidence:     sellEvidence,
		EvidenceHash:     evidenceHash(ev.buys, ev.sells),
	}, true
}

func weightedSum(cands []dto.Candidate, policy AggregationPolicy) float64 {
	var sum float64
	for _, c := range cands {
		weight := policy.SecondaryWeight
		if c.IsPrimary {
			weight = policy.PrimaryWeight
		}
		sum += float64(c.Confidence) * weight
	}
	return sum
}

// evidenceHash fingerprints the sorted (source, trader) pairs of every contributing candidate.
func evidenceHash(groups ...[]dto.Candidate) string {
	var pairs []string
	for _, g := range groups {
		for _, c := range g {
			trader := c.Trader
			if trader == "" {
				trader = missingTrader
			}
			pairs = append(pairs, string(c.Source)+"|"+trader)
		}
	}
	sort.Strings(pairs)
	sum := md5.Sum([]byte(strings.Join(pairs, "\n")))
	return hex.EncodeToString(sum[:])
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
