package notification

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var emailMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// emailBodyPolicy keeps basic formatting in the rendered body and strips
// everything else. The surrounding layout is ours; the body text is not.
var emailBodyPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "b", "strong", "i", "em", "ul", "ol", "li")
	return p
}()

// renderEmailBody converts the Markdown body to sanitized HTML.
func renderEmailBody(markdownBody string) (string, error) {
	var buf bytes.Buffer
	if err := emailMarkdown.Convert([]byte(markdownBody), &buf); err != nil {
		return "", fmt.Errorf("failed to render email body: %w", err)
	}
	return emailBodyPolicy.Sanitize(buf.String()), nil
}

const emailLayout = `<html>
    <body style="font-family: Arial, sans-serif; background:#f4f6f9; padding:30px;">
        <div style="max-width:600px; margin:auto; background:white; padding:30px; border-radius:8px;">
            <h2 style="color:#2c3e50;">%s</h2>
            <div style="font-size:15px; color:#333;">%s</div>

            <div style="text-align:center; margin:40px 0;">
                <a href="%s"
                   style="background:#0d6efd; color:white; padding:14px 28px;
                          text-decoration:none; border-radius:6px; font-weight:bold;">
                    %s
                </a>
            </div>

            <hr>
            <p style="font-size:12px; color:#888;">
                TicketSys – Sistema di gestione ticket<br>
                Questa email è generata automaticamente.
            </p>
        </div>
    </body>
</html>`

// buildEmailHTML wraps the rendered body in the standard TicketSys layout
// with a single call-to-action button.
func buildEmailHTML(title, markdownBody, ticketURL, buttonText string) (string, error) {
	body, err := renderEmailBody(markdownBody)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(emailLayout, title, body, ticketURL, buttonText), nil
}

func ticketURL(baseURL string, ticketID uint) string {
	return fmt.Sprintf("%s/tickets/%d", strings.TrimRight(baseURL, "/"), ticketID)
}
