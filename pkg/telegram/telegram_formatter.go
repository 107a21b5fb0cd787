package telegram

import (
	"fmt"
	"strings"

	"golang-insider-scanner/internal/scanner/dto"
)

const (
	maxMessageLen      = 4090
	maxPrimaryRows     = 5
	maxSecondaryRows   = 3
	markdownV1Specials = "_*`["
)

// FormatNuclearAlert renders an alert as legacy Markdown.
func FormatNuclearAlert(alert dto.NuclearAlert, mode string) string {
	icon := "🔴"
	if alert.Action.IsBuy() {
		icon = "🟢"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "☢️ *NUCLEAR SIGNAL* %s\n\n", icon)
	fmt.Fprintf(&b, "*%s %s*\n", alert.Action, EscapeMarkdown(alert.Ticker))
	fmt.Fprintf(&b, "🎯 *Confidence:* %d%%\n", alert.Confidence)
	fmt.Fprintf(&b, "📚 *Primary sources:* %d (%s)\n", len(alert.PrimarySources), EscapeMarkdown(strings.Join(alert.PrimarySources, ", ")))
	if len(alert.SecondarySources) > 0 {
		fmt.Fprintf(&b, "➕ *Secondary:* %s\n", EscapeMarkdown(strings.Join(alert.SecondarySources, ", ")))
	}
	fmt.Fprintf(&b, "🧪 *Mode:* %s\n", mode)

	primary, secondary := splitEvidence(alert)
	if len(primary) > 0 {
		b.WriteString("\n*Evidence*\n")
		for _, c := range primary {
			b.WriteString("• ")
			b.WriteString(EscapeMarkdown(EvidenceLine(c)))
			b.WriteString("\n")
		}
	}
	if len(secondary) > 0 {
		b.WriteString("\n*Supporting*\n")
		for _, c := range secondary {
			b.WriteString("• ")
			b.WriteString(EscapeMarkdown(EvidenceLine(c)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatReport renders a plain report with a bold title.
func FormatReport(subject, body string) string {
	return fmt.Sprintf("🧠 *%s*\n\n%s", EscapeMarkdown(subject), EscapeMarkdown(body))
}

// EvidenceLine describes one candidate in a single line.
func EvidenceLine(c dto.Candidate) string {
	var b strings.Builder
	b.WriteString(string(c.Source))
	b.WriteString(": ")
	b.WriteString(string(c.Action))
	if c.Trader != "" {
		b.WriteString(" by ")
		b.WriteString(c.Trader)
	}
	if c.IsPowerTrader {
		b.WriteString(" [POWER TRADER]")
	}
	if c.IsCluster {
		fmt.Fprintf(&b, " [CLUSTER x%d]", c.ClusterSize)
	}
	fmt.Fprintf(&b, " (%d%%)", c.Confidence)
	return b.String()
}

// splitEvidence returns up to five primary and three secondary candidates, buys before sells.
func splitEvidence(alert dto.NuclearAlert) (primary, secondary []dto.Candidate) {
	for _, c := range append(append([]dto.Candidate{}, alert.Buys...), alert.Sells...) {
		if c.IsPrimary {
			if len(primary) < maxPrimaryRows {
				primary = append(primary, c)
			}
		} else if len(secondary) < maxSecondaryRows {
			secondary = append(secondary, c)
		}
	}
	return primary, secondary
}

// EscapeMarkdown escapes legacy Markdown control characters.
func EscapeMarkdown(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(markdownV1Specials, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SplitMessage breaks text on line boundaries so every part fits in limit bytes.
func SplitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}
	var parts []string
	var current strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > limit {
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
			parts = append(parts, line[:limit])
			line = line[limit:]
		}
		if current.Len()+len(line) > limit {
			parts = append(parts, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
