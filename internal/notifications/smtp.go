package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

type SMTPClient struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

// NewSMTPClient returns nil when host or sender is missing.
func NewSMTPClient(host string, port int, user, password, senderEmail, senderName string) *SMTPClient {
	if strings.TrimSpace(host) == "" || strings.TrimSpace(senderEmail) == "" {
		return nil
	}
	if strings.TrimSpace(senderName) == "" {
		senderName = senderEmail
	}
	return &SMTPClient{
		dialer:      gomail.NewDialer(host, port, user, password),
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (c *SMTPClient) Send(ctx context.Context, msg Message) (string, error) {
	if c == nil {
		return "", fmt.Errorf("smtp client is nil")
	}
	if err := msg.check(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m := c.build(msg)
	if err := c.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("smtp send failed: %w", err)
	}
	return m.GetHeader("Message-ID")[0], nil
}

func (c *SMTPClient) build(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.senderEmail, c.senderName)
	if msg.ToName != "" {
		m.SetAddressHeader("To", msg.ToEmail, msg.ToName)
	} else {
		m.SetHeader("To", msg.ToEmail)
	}
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), c.dialer.Host))
	m.SetBody("text/html", msg.HTML)
	return m
}
