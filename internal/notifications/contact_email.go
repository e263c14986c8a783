package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
)

// ContactMessage is the part of a contact submission that goes into mail.
type ContactMessage struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	Company         string
	Subject         string
	Message         string
	ServiceInterest []string
	Budget          string
	Timeline        string
}

const contactNotificationTemplate = `<!DOCTYPE html>
<html>
<body>
  <h3>New contact form submission</h3>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  {{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
  {{if .Company}}<p><strong>Company:</strong> {{.Company}}</p>{{end}}
  {{if .ServiceInterest}}<p><strong>Services:</strong> {{join .ServiceInterest ", "}}</p>{{end}}
  {{if .Budget}}<p><strong>Budget:</strong> {{.Budget}}</p>{{end}}
  {{if .Timeline}}<p><strong>Timeline:</strong> {{.Timeline}}</p>{{end}}
  <p><strong>ID:</strong> {{.ID}}</p>
  <p><strong>Message:</strong><br/>{{.Message}}</p>
</body>
</html>`

const contactConfirmationTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Hi {{.Name}},</p>
  <p>Thanks for reaching out. We received your message and will get back to you within one business day.</p>
  {{if .Subject}}<p><strong>Subject:</strong> {{.Subject}}</p>{{end}}
  <p>{{.Message}}</p>
</body>
</html>`

var funcs = template.FuncMap{"join": strings.Join}

var (
	contactNotificationTmpl = template.Must(template.New("contact_notification").Funcs(funcs).Parse(contactNotificationTemplate))
	contactConfirmationTmpl = template.Must(template.New("contact_confirmation").Funcs(funcs).Parse(contactConfirmationTemplate))
)

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ContactNotifier mails the agency inbox and the submitter.
type ContactNotifier struct {
	mailer      Mailer
	notifyEmail string
}

// NewContactNotifier returns nil without a mailer. notifyEmail may be empty,
// in which case only the confirmation is sent.
func NewContactNotifier(mailer Mailer, notifyEmail string) *ContactNotifier {
	if mailer == nil {
		return nil
	}
	return &ContactNotifier{mailer: mailer, notifyEmail: strings.TrimSpace(notifyEmail)}
}

func (n *ContactNotifier) ContactSubmitted(ctx context.Context, msg ContactMessage) error {
	if n == nil {
		return nil
	}
	if n.notifyEmail != "" {
		html, err := render(contactNotificationTmpl, msg)
		if err != nil {
			return err
		}
		subject := "New contact: " + msg.Name
		if msg.Subject != "" {
			subject += " - " + msg.Subject
		}
		if _, err := n.mailer.Send(ctx, Message{
			ToEmail: n.notifyEmail,
			ReplyTo: msg.Email,
			Subject: subject,
			HTML:    html,
		}); err != nil {
			return fmt.Errorf("contact notification: %w", err)
		}
	}

	html, err := render(contactConfirmationTmpl, msg)
	if err != nil {
		return err
	}
	if _, err := n.mailer.Send(ctx, Message{
		ToEmail: msg.Email,
		ToName:  msg.Name,
		Subject: "We received your message",
		HTML:    html,
	}); err != nil {
		return fmt.Errorf("contact confirmation: %w", err)
	}
	return nil
}
