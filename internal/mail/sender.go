package mail

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/wneessen/go-mail"
)

// Subject is fixed per report; the date lives in the body and attachment name.
const subject = "Bitcoin Trading Analysis Report - Daily Update"

// Sender delivers rendered reports over authenticated SMTP with mandatory
// STARTTLS, the Gmail app-password setup by default.
type Sender struct {
	host     string
	port     int
	address  string
	password string
	to       string
}

// NewSender creates a Sender. address doubles as SMTP username and the
// From header.
func NewSender(host string, port int, address, password, recipient string) *Sender {
	return &Sender{
		host:     host,
		port:     port,
		address:  address,
		password: password,
		to:       recipient,
	}
}

// SendReport sends the HTML report as the email body and again as a
// date-stamped attachment. No retry: a failed send fails the run.
func (s *Sender) SendReport(ctx context.Context, html, attachmentName string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.address); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(s.to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)
	if err := msg.AttachReader(attachmentName, strings.NewReader(html)); err != nil {
		return fmt.Errorf("failed to attach report: %w", err)
	}

	client, err := mail.NewClient(s.host,
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.address),
		mail.WithPassword(s.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	log.Printf("[Mail] Sending report to %s via %s:%d", s.to, s.host, s.port)
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Printf("[Mail] Report delivered to %s", s.to)
	return nil
}
