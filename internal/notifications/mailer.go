package notifications

import (
	"context"
	"errors"
	"strings"
)

type Message struct {
	ToEmail string
	ToName  string
	ReplyTo string
	Subject string
	HTML    string
}

func (m Message) check() error {
	if strings.TrimSpace(m.ToEmail) == "" {
		return errors.New("missing recipient email")
	}
	if strings.TrimSpace(m.Subject) == "" {
		return errors.New("missing subject")
	}
	if strings.TrimSpace(m.HTML) == "" {
		return errors.New("missing html body")
	}
	return nil
}

// Mailer delivers one HTML message and returns the provider message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}
