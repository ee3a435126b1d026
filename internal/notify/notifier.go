// Package notify is the outbound notification port. Delivery is fire and
// forget: a workflow transition never fails or rolls back because a
// notification could not be sent.
package notify

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"sort"
	"strings"
	"sync"
	"time"
)

// Kind names a notification template.
type Kind string

const (
	KindCompanyApproved          Kind = "company_approved"
	KindCompanyRejected          Kind = "company_rejected"
	KindJobApproved              Kind = "job_approved"
	KindJobRejected              Kind = "job_rejected"
	KindApplicationReceived      Kind = "application_received"
	KindApplicationStatusChanged Kind = "application_status_changed"
	KindVerifyEmail              Kind = "verify_email"
)

// Notifier sends one templated message. Implementations honour the context
// deadline and report success as a bool; they never panic the workflow.
type Notifier interface {
	Send(ctx context.Context, to string, kind Kind, data map[string]string) bool
}

var subjects = map[Kind]string{
	KindCompanyApproved:          "Your institution profile was approved",
	KindCompanyRejected:          "Your institution profile was rejected",
	KindJobApproved:              "Your job posting was approved",
	KindJobRejected:              "Your job posting was rejected",
	KindApplicationReceived:      "New application received",
	KindApplicationStatusChanged: "Your application status changed",
	KindVerifyEmail:              "Verify your email address",
}

func renderBody(kind Kind, data map[string]string) string {
	var b strings.Builder
	b.WriteString(subjects[kind])
	b.WriteString("\r\n\r\n")
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\r\n", k, data[k])
	}
	return b.String()
}

// SMTPNotifier delivers mail through a plain SMTP relay.
type SMTPNotifier struct {
	Addr string // host:port
	From string
	Auth smtp.Auth
}

// NewSMTPNotifier creates an SMTP-backed notifier. Auth may be nil for an
// open relay (local dev).
func NewSMTPNotifier(addr, from string, auth smtp.Auth) *SMTPNotifier {
	return &SMTPNotifier{Addr: addr, From: from, Auth: auth}
}

// Send delivers the message, bounded by the context deadline.
func (n *SMTPNotifier) Send(ctx context.Context, to string, kind Kind, data map[string]string) bool {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		n.From, to, subjects[kind], renderBody(kind, data))

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(n.Addr, n.Auth, n.From, []string{to}, []byte(msg))
	}()

	select {
	case <-ctx.Done():
		log.Printf("Notifier: sending %s to %s timed out: %v", kind, to, ctx.Err())
		return false
	case err := <-done:
		if err != nil {
			log.Printf("Notifier: sending %s to %s failed: %v", kind, to, err)
			return false
		}
		return true
	}
}

// LogNotifier writes notifications to the log instead of delivering them.
// Used when no SMTP relay is configured.
type LogNotifier struct{}

func (LogNotifier) Send(ctx context.Context, to string, kind Kind, data map[string]string) bool {
	log.Printf("Notifier (log only): %s -> %s %v", kind, to, data)
	return true
}

// Async decorates a notifier so Send returns immediately and delivery runs in
// the background with its own deadline.
type Async struct {
	Inner   Notifier
	Timeout time.Duration
}

func (a Async) Send(ctx context.Context, to string, kind Kind, data map[string]string) bool {
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		a.Inner.Send(bgCtx, to, kind, data)
	}()
	return true
}

// Recorded is one captured notification.
type Recorded struct {
	To   string
	Kind Kind
	Data map[string]string
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu   sync.Mutex
	sent []Recorded
}

func (r *Recorder) Send(ctx context.Context, to string, kind Kind, data map[string]string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Recorded{To: to, Kind: kind, Data: data})
	return true
}

// Sent returns a copy of the captured notifications.
func (r *Recorder) Sent() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Recorded(nil), r.sent...)
}

// Reset discards everything captured so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}
