package notify

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Sender delivers a single message. Implementations must be safe for
// use from the dispatcher goroutine.
type Sender interface {
	Send(to string, subject string, body string) error
}

// SMTPSender delivers via plain SMTP (works with Mailpit in dev and a
// relay in production).
type SMTPSender struct {
	addr string
	from string
}

func NewSMTPSender(host, port, from string) *SMTPSender {
	if from == "" {
		from = "bookings@qwiken.app"
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", strings.TrimSpace(host), strings.TrimSpace(port)),
		from: strings.TrimSpace(from),
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		s.from, to, subject, body,
	)
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}
