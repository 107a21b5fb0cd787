package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
)

// Config holds SMTP settings. To may list several comma separated recipients.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	To       string
	UseTLS   bool
	Timeout  time.Duration
}

// Message is a multipart/alternative email. HTML is optional.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// Mailer sends messages to the configured recipients.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type smtpMailer struct {
	cfg  Config
	from *mail.Address
	to   []*mail.Address
}

// New creates an SMTP mailer.
func New(cfg Config) (Mailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host not configured")
	}
	to, err := mail.ParseAddressList(cfg.To)
	if err != nil || len(to) == 0 {
		return nil, fmt.Errorf("invalid smtp recipients %q: %v", cfg.To, err)
	}
	fromAddr := cfg.From
	if fromAddr == "" {
		fromAddr = cfg.Username
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &smtpMailer{
		cfg:  cfg,
		from: &mail.Address{Name: cfg.FromName, Address: fromAddr},
		to:   to,
	}, nil
}

// Send builds the message and delivers it over SMTP, using implicit TLS when UseTLS is set and
// STARTTLS when the server offers it otherwise.
func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	body, err := Build(m.from, m.to, msg, time.Now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	if m.cfg.UseTLS {
		conn = tls.Client(conn, &tls.Config{ServerName: m.cfg.Host})
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if !m.cfg.UseTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
				return fmt.Errorf("failed to start TLS: %w", err)
			}
		}
	}

	if m.cfg.Username != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("SMTP authentication failed: %w", err)
			}
		}
	}

	if err := client.Mail(m.from.Address); err != nil {
		return fmt.Errorf("failed to set mail from: %w", err)
	}
	for _, rcpt := range m.to {
		if err := client.Rcpt(rcpt.Address); err != nil {
			return fmt.Errorf("failed to set mail recipient: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to start data: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return client.Quit()
}

// Build renders the RFC 5322 message.
func Build(from *mail.Address, to []*mail.Address, msg Message, date time.Time) ([]byte, error) {
	var h mail.Header
	h.SetDate(date)
	h.SetAddressList("From", []*mail.Address{from})
	h.SetAddressList("To", to)
	h.SetSubject(msg.Subject)

	var buf bytes.Buffer
	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create mail writer: %w", err)
	}
	iw, err := mw.CreateInline()
	if err != nil {
		return nil, fmt.Errorf("create inline writer: %w", err)
	}

	if err := writePart(iw, "text/plain", msg.Text); err != nil {
		return nil, err
	}
	if strings.TrimSpace(msg.HTML) != "" {
		if err := writePart(iw, "text/html", msg.HTML); err != nil {
			return nil, err
		}
	}

	if err := iw.Close(); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePart(iw *mail.InlineWriter, contentType, body string) error {
	var h mail.InlineHeader
	h.SetContentType(contentType, map[string]string{"charset": "utf-8"})
	h.Set("Content-Transfer-Encoding", "quoted-printable")
	w, err := iw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create %s part: %w", contentType, err)
	}
	if _, err := io.WriteString(w, body); err != nil {
		return err
	}
	return w.Close()
}
