package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type recordingMailer struct {
	sent []Message
}

func (m *recordingMailer) Send(ctx context.Context, msg Message) (string, error) {
	m.sent = append(m.sent, msg)
	return "id", nil
}

func TestContactNotifierSendsBothMails(t *testing.T) {
	rec := &recordingMailer{}
	n := NewContactNotifier(rec, "inbox@agency.test")

	err := n.ContactSubmitted(context.Background(), ContactMessage{
		ID: "abc", Name: "Ada <script>", Email: "ada@example.com", Message: "Need SEO",
		ServiceInterest: []string{"SEO", "Branding"},
	})
	if err != nil {
		t.Fatalf("ContactSubmitted error: %v", err)
	}
	if len(rec.sent) != 2 {
		t.Fatalf("expected 2 mails, got %d", len(rec.sent))
	}
	if rec.sent[0].ToEmail != "inbox@agency.test" || rec.sent[0].ReplyTo != "ada@example.com" {
		t.Fatalf("unexpected notification: %+v", rec.sent[0])
	}
	if !strings.Contains(rec.sent[0].HTML, "SEO, Branding") {
		t.Fatalf("services missing from notification")
	}
	if strings.Contains(rec.sent[1].HTML, "<script>") {
		t.Fatalf("name was not escaped")
	}
}

func TestContactNotifierNil(t *testing.T) {
	if NewContactNotifier(nil, "x@y.z") != nil {
		t.Fatalf("expected nil notifier without mailer")
	}
	var n *ContactNotifier
	if err := n.ContactSubmitted(context.Background(), ContactMessage{}); err != nil {
		t.Fatalf("nil notifier should be a no-op: %v", err)
	}
}

func TestBrevoSend(t *testing.T) {
	var got brevoSendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api-key") != "key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<m1@brevo>"}`))
	}))
	defer srv.Close()

	c := NewBrevoClient("key", "noreply@agency.test", "", true)
	c.endpoint = srv.URL

	id, err := c.Send(context.Background(), Message{ToEmail: "a@b.test", Subject: "hi", HTML: "<p>x</p>"})
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if id != "<m1@brevo>" {
		t.Fatalf("unexpected id %q", id)
	}
	if got.Sender.Name != "noreply@agency.test" || got.Headers["X-Sib-Sandbox"] != "drop" {
		t.Fatalf("unexpected payload: %+v", got)
	}

	c.apiKey = "wrong"
	if _, err := c.Send(context.Background(), Message{ToEmail: "a@b.test", Subject: "hi", HTML: "x"}); err == nil {
		t.Fatalf("expected error on 401")
	}
}

func TestMessageCheck(t *testing.T) {
	if NewBrevoClient("", "a@b.c", "", false) != nil {
		t.Fatalf("expected nil client without key")
	}
	c := NewBrevoClient("k", "a@b.c", "", false)
	if _, err := c.Send(context.Background(), Message{Subject: "s", HTML: "h"}); err == nil {
		t.Fatalf("expected missing recipient error")
	}
}

func TestSMTPBuild(t *testing.T) {
	if NewSMTPClient("", 25, "", "", "a@b.c", "") != nil {
		t.Fatalf("expected nil client without host")
	}
	c := NewSMTPClient("smtp.agency.test", 587, "u", "p", "noreply@agency.test", "Agency")
	m := c.build(Message{ToEmail: "a@b.test", ToName: "A", ReplyTo: "r@b.test", Subject: "hi", HTML: "<p>x</p>"})
	if m.GetHeader("Subject")[0] != "hi" {
		t.Fatalf("subject not set")
	}
	if !strings.HasSuffix(m.GetHeader("Message-ID")[0], "@smtp.agency.test>") {
		t.Fatalf("unexpected message id %q", m.GetHeader("Message-ID")[0])
	}
	if m.GetHeader("Reply-To")[0] != "r@b.test" {
		t.Fatalf("reply-to not set")
	}
}
