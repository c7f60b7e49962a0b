package mailer

import (
	"fmt"
	netmail "net/mail"
	"strings"
)

// Recipient is one address as written in the configuration, either
// "Name <email>" or a bare email.
type Recipient struct {
	Name    string
	Address string
}

func (r Recipient) String() string {
	if r.Name == "" {
		return r.Address
	}
	return fmt.Sprintf("%s <%s>", r.Name, r.Address)
}

// ParseRecipients splits a comma separated list. Blank items are ignored.
func ParseRecipients(raw string) ([]Recipient, error) {
	out := make([]Recipient, 0)
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		parsed, err := netmail.ParseAddress(token)
		if err != nil {
			return nil, fmt.Errorf("invalid recipient %q: %w", token, err)
		}
		out = append(out, Recipient{Name: strings.TrimSpace(parsed.Name), Address: parsed.Address})
	}
	return out, nil
}

// Addresses extracts the bare emails used for the SMTP envelope.
func Addresses(recipients []Recipient) []string {
	out := make([]string, 0, len(recipients))
	for _, recipient := range recipients {
		out = append(out, recipient.Address)
	}
	return out
}

// Join renders recipients the way they were configured.
func Join(recipients []Recipient) string {
	parts := make([]string, 0, len(recipients))
	for _, recipient := range recipients {
		parts = append(parts, recipient.String())
	}
	return strings.Join(parts, ", ")
}
