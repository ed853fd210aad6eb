package showcase

import (
	"net/url"
	"strings"
)

type MailDraft struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Mailto  string `json:"mailto"`
}

// NewMailDraft builds the pre-filled mail client link for a contact request.
func NewMailDraft(to, name, email, message string) MailDraft {
	subject := "Portfolio inquiry from " + name
	body := message + "\n\nFrom: " + name + " (" + email + ")"
	return MailDraft{
		To:      to,
		Subject: subject,
		Body:    body,
		Mailto:  "mailto:" + to + "?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body),
	}
}

// encodeComponent percent-encodes s for a mailto header value. Spaces become
// %20, since mail clients do not decode '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
