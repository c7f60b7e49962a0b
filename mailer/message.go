package mailer

import (
	"errors"
	"fmt"
	"os"

	"github.com/wneessen/go-mail"
)

// Envelope carries everything needed to build the monthly report mail.
type Envelope struct {
	FromName string
	From     string
	To       []Recipient
	Cc       []Recipient
	Subject  string
	HTML     string
	// SignaturePath is embedded inline when the file exists.
	SignaturePath string
	// SignatureContentID is referenced from the body as cid:<id>.
	SignatureContentID string
}

// BuildMessage assembles a multipart/related message. The second return value
// reports whether the signature image was embedded.
func BuildMessage(env Envelope) (*mail.Msg, bool, error) {
	if len(env.To) == 0 {
		return nil, false, errors.New("at least one recipient is required")
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(env.FromName, env.From); err != nil {
		return nil, false, fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(recipientStrings(env.To)...); err != nil {
		return nil, false, fmt.Errorf("set to addresses: %w", err)
	}
	if len(env.Cc) > 0 {
		if err := msg.Cc(recipientStrings(env.Cc)...); err != nil {
			return nil, false, fmt.Errorf("set cc addresses: %w", err)
		}
	}
	msg.Subject(env.Subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextHTML, env.HTML)

	embedded := false
	if env.SignaturePath != "" {
		info, err := os.Stat(env.SignaturePath)
		if err == nil && !info.IsDir() {
			contentID := env.SignatureContentID
			if contentID == "" {
				contentID = "firma_digital"
			}
			msg.EmbedFile(env.SignaturePath, mail.WithFileContentID("<"+contentID+">"))
			embedded = true
		}
	}

	return msg, embedded, nil
}

func recipientStrings(recipients []Recipient) []string {
	out := make([]string, 0, len(recipients))
	for _, recipient := range recipients {
		if recipient.Name == "" {
			out = append(out, recipient.Address)
			continue
		}
		out = append(out, fmt.Sprintf("%q <%s>", recipient.Name, recipient.Address))
	}
	return out
}
