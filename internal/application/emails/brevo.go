package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// BrevoSendRequest matches Brevo API v3 send transactional email body.
type BrevoSendRequest struct {
	Sender      BrevoSender `json:"sender"`
	To          []BrevoTo   `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

type BrevoSender struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type BrevoTo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Sender delivers magic links. Delivery is fire-and-forget for callers: they log
// the returned error and never fail the request on it.
type Sender interface {
	SendMagicLink(ctx context.Context, toEmail, fullName, link string, expires time.Time) error
}

// BrevoClient sends emails via Brevo (Sendinblue). SENDINBLUE_API_KEY, MAIL_FROM.
type BrevoClient struct {
	APIKey   string
	MailFrom string
	Endpoint string // defaults to the Brevo v3 API; overridden in tests
	Client   *http.Client
}

func (c *BrevoClient) from() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return "noreply@semdex.mu"
}

func (c *BrevoClient) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return brevoAPI
}

func (c *BrevoClient) send(ctx context.Context, toEmail, toName, subject, html string) error {
	if c.APIKey == "" {
		return nil
	}
	body := BrevoSendRequest{
		Sender:      BrevoSender{Email: c.from(), Name: "SEMDEX"},
		To:          []BrevoTo{{Email: toEmail, Name: toName}},
		Subject:     subject,
		HTMLContent: html,
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}

// SendMagicLink emails a one-time sign-in link.
func (c *BrevoClient) SendMagicLink(ctx context.Context, toEmail, fullName, link string, expires time.Time) error {
	if c.APIKey == "" {
		return nil
	}
	content := magicLinkContent(fullName, link, expires)
	return c.send(ctx, toEmail, fullName, "Your SEMDEX sign-in link", EmailLayout(content))
}

// LogSender stands in when no mail provider is configured.
type LogSender struct{}

func (LogSender) SendMagicLink(_ context.Context, toEmail, _, _ string, expires time.Time) error {
	log.Info().Str("to", toEmail).Time("expires", expires).Msg("magic link issued (no mail provider configured)")
	return nil
}

func magicLinkContent(fullName, link string, expires time.Time) string {
	if fullName == "" {
		fullName = "there"
	}
	return fmt.Sprintf(`
    <h1>Sign in to SEMDEX</h1>
    <p>Hello %s,</p>
    <p>Use the button below to sign in to the shareholder portal. The link can be used once and expires at %s UTC.</p>
    <center>
      <a href="%s" class="semdex-button">Sign in</a>
    </center>
    <p style="margin-top: 20px; font-size: 14px; color: #64748B;">If you did not request this link you can ignore this email.</p>
`, EscapeHTML(fullName), expires.UTC().Format("2 Jan 2006 15:04"), EscapeHTML(link))
}
