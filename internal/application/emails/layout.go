package emails

import (
	"fmt"
	"strings"
	"time"
)

// Portal palette (navy gradient of the login screen).
const (
	themePrimary   = "#1D4ED8"
	themeDark      = "#0F172A"
	themeTextMuted = "#64748B"
	themeBgBody    = "#F1F5F9"
	themeWhite     = "#FFFFFF"
)

// EmailLayout wraps content in the SEMDEX transactional email frame.
func EmailLayout(contentHTML string) string {
	year := time.Now().Year()
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>SEMDEX</title>
  <style>
    body { margin: 0; padding: 0; background-color: %s; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; color: %s; }
    .content-body p { margin: 0 0 20px 0; font-size: 16px; line-height: 1.6; }
    .content-body h1 { font-size: 22px; margin: 0 0 16px 0; }
    .semdex-button { display: inline-block; background-color: %s; color: #ffffff !important; padding: 12px 32px; text-decoration: none !important; border-radius: 8px; font-weight: 600; }
    .footer-text { color: %s; font-size: 12px; }
  </style>
</head>
<body>
  <table role="presentation" width="100%%" cellspacing="0" cellpadding="0" style="background-color: %s;">
    <tr>
      <td align="center" style="padding: 40px 0;">
        <table role="presentation" width="560" cellspacing="0" cellpadding="0" style="background-color: %s; border-radius: 12px;">
          <tr><td align="center" style="padding: 36px 0 8px 0; font-size: 28px; font-weight: 700; color: %s;">SEMDEX</td></tr>
          <tr><td align="center" style="padding: 0 0 24px 0;" class="footer-text">Shareholder Information Portal · MCB Group Ltd</td></tr>
          <tr><td class="content-body" style="padding: 0 40px 24px 40px;">%s</td></tr>
          <tr><td align="center" style="padding: 16px 40px 32px 40px;"><p class="footer-text">© %d SEMDEX. This message was sent to an authorized shareholder only.</p></td></tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`,
		themeBgBody, themeDark, themePrimary, themeTextMuted,
		themeBgBody, themeWhite, themeDark, contentHTML, year)
}

// EscapeHTML escapes HTML specials for safe interpolation.
func EscapeHTML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;", "'", "&#39;")
	return r.Replace(s)
}
