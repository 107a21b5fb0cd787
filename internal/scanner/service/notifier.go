package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"golang-insider-scanner/internal/scanner/config"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/pkg/logger"
	"golang-insider-scanner/pkg/mailer"
	"golang-insider-scanner/pkg/telegram"
)

// NewNotifier builds the notifier selected by cfg.Notifier.Provider.
func NewNotifier(cfg *config.Config, log *logger.Logger, mode string) (Notifier, error) {
	switch cfg.Notifier.Provider {
	case "email":
		m, err := mailer.New(mailer.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
			To:       cfg.SMTP.To,
			UseTLS:   cfg.SMTP.UseTLS,
			Timeout:  cfg.SMTP.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("create mailer: %w", err)
		}
		return NewEmailNotifier(m, mode), nil
	case "telegram":
		client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return nil, fmt.Errorf("create telegram client: %w", err)
		}
		return NewTelegramNotifier(client, mode), nil
	case "log":
		return NewLogNotifier(log), nil
	default:
		return nil, fmt.Errorf("unknown notifier provider %q", cfg.Notifier.Provider)
	}
}

// AlertSubject is the subject line for an alert.
func AlertSubject(alert dto.NuclearAlert) string {
	return fmt.Sprintf("NUCLEAR: %s %s (%d%%)", alert.Action, alert.Ticker, alert.Confidence)
}

type emailNotifier struct {
	mailer mailer.Mailer
	mode   string
}

// NewEmailNotifier sends alerts as HTML email with a plain text part.
func NewEmailNotifier(m mailer.Mailer, mode string) Notifier {
	return &emailNotifier{mailer: m, mode: mode}
}

func (n *emailNotifier) NotifyAlert(ctx context.Context, alert dto.NuclearAlert) error {
	html, err := RenderAlertHTML(alert, n.mode)
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, mailer.Message{
		Subject: AlertSubject(alert),
		Text:    RenderAlertText(alert, n.mode),
		HTML:    html,
	})
}

func (n *emailNotifier) NotifyReport(ctx context.Context, subject string, body string) error {
	return n.mailer.Send(ctx, mailer.Message{Subject: subject, Text: body})
}

type telegramNotifier struct {
	client telegram.Notifier
	mode   string
}

// NewTelegramNotifier sends alerts to a Telegram chat.
func NewTelegramNotifier(client telegram.Notifier, mode string) Notifier {
	return &telegramNotifier{client: client, mode: mode}
}

func (n *telegramNotifier) NotifyAlert(_ context.Context, alert dto.NuclearAlert) error {
	return n.client.SendMessage(telegram.FormatNuclearAlert(alert, n.mode))
}

func (n *telegramNotifier) NotifyReport(_ context.Context, subject string, body string) error {
	return n.client.SendMessage(telegram.FormatReport(subject, body))
}

type logNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier only logs alerts. Used for local runs.
func NewLogNotifier(log *logger.Logger) Notifier {
	return &logNotifier{logger: log}
}

func (n *logNotifier) NotifyAlert(ctx context.Context, alert dto.NuclearAlert) error {
	n.logger.InfoContext(ctx, AlertSubject(alert),
		logger.Field("primary_sources", alert.PrimarySources),
		logger.Field("secondary_sources", alert.SecondarySources),
		logger.Field("power_traders", alert.PowerTraders),
		logger.StringField("evidence_hash", alert.EvidenceHash))
	return nil
}

func (n *logNotifier) NotifyReport(ctx context.Context, subject string, body string) error {
	n.logger.InfoContext(ctx, subject, logger.StringField("report", body))
	return nil
}

type alertView struct {
	Alert     dto.NuclearAlert
	Mode      string
	Bullish   bool
	Primary   []dto.Candidate
	Secondary []dto.Candidate
}

func newAlertView(alert dto.NuclearAlert, mode string) alertView {
	view := alertView{Alert: alert, Mode: mode, Bullish: alert.Action.IsBuy()}
	for _, c := range append(append([]dto.Candidate{}, alert.Buys...), alert.Sells...) {
		if c.IsPrimary {
			if len(view.Primary) < 5 {
				view.Primary = append(view.Primary, c)
			}
		} else if len(view.Secondary) < 3 {
			view.Secondary = append(view.Secondary, c)
		}
	}
	return view
}

var alertHTMLTemplate = template.Must(template.New("alert").Parse(`<!DOCTYPE html>
<html><body style="font-family:-apple-system,sans-serif;background:#0f172a;padding:24px;">
<div style="max-width:600px;margin:0 auto;background:#fff;border-radius:12px;overflow:hidden;">
<div style="padding:24px;text-align:center;background:{{if .Bullish}}#10b981{{else}}#ef4444{{end}};color:#fff;">
<div style="font-size:14px;letter-spacing:2px;">NUCLEAR SIGNAL</div>
<h1 class="headline" style="margin:8px 0;font-size:36px;">{{.Alert.Action}} {{.Alert.Ticker}}</h1>
<div class="confidence" style="font-size:20px;">{{.Alert.Confidence}}% confidence</div>
</div>
<div style="padding:24px;">
<p><strong>Primary sources:</strong> <span class="primary-count">{{len .Alert.PrimarySources}}</span>
{{range $i, $s := .Alert.PrimarySources}}{{if $i}}, {{end}}{{$s}}{{end}}</p>
<p><strong>Mode:</strong> {{.Mode}}</p>
<h3>Evidence</h3>
<ul class="primary">
{{range .Primary}}<li>{{.Source}}: {{.Action}}{{if .Trader}} by {{.Trader}}{{end}}{{if .IsPowerTrader}} <strong>POWER TRADER</strong>{{end}}{{if .IsCluster}} <strong>CLUSTER x{{.ClusterSize}}</strong>{{end}} ({{.Confidence}}%)</li>
{{end}}</ul>
{{if .Secondary}}<h3>Supporting signals</h3>
<ul class="secondary">
{{range .Secondary}}<li>{{.Source}}: {{.Action}} ({{.Confidence}}%)</li>
{{end}}</ul>{{end}}
</div></div></body></html>`))

// RenderAlertHTML renders the HTML body of an alert email.
func RenderAlertHTML(alert dto.NuclearAlert, mode string) (string, error) {
	var buf bytes.Buffer
	if err := alertHTMLTemplate.Execute(&buf, newAlertView(alert, mode)); err != nil {
		return "", fmt.Errorf("render alert: %w", err)
	}
	return buf.String(), nil
}

// RenderAlertText renders the plain text body of an alert.
func RenderAlertText(alert dto.NuclearAlert, mode string) string {
	view := newAlertView(alert, mode)
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  confidence %d%%\n", alert.Action, alert.Ticker, alert.Confidence)
	fmt.Fprintf(&b, "Primary sources (%d): %s\n", len(alert.PrimarySources), strings.Join(alert.PrimarySources, ", "))
	if len(alert.SecondarySources) > 0 {
		fmt.Fprintf(&b, "Secondary sources: %s\n", strings.Join(alert.SecondarySources, ", "))
	}
	fmt.Fprintf(&b, "Mode: %s\n\nEvidence:\n", mode)
	for _, c := range view.Primary {
		fmt.Fprintf(&b, "  - %s\n", telegram.EvidenceLine(c))
	}
	for _, c := range view.Secondary {
		fmt.Fprintf(&b, "  + %s\n", telegram.EvidenceLine(c))
	}
	return b.String()
}
