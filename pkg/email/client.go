package email

import (
	"time"

	"gopkg.in/mail.v2"
)

type Client struct {
	smtpHost string
	smtpPort int
	username string
	password string
	from     string
	timeout  time.Duration
}

func NewClient(smtpHost string, smtpPort int, username, password, from string, timeout time.Duration) *Client {
	return &Client{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		from:     from,
		timeout:  timeout,
	}
}

// Send delivers one message over SMTP with a plain-text body and an HTML
// alternative. A single SMTP session is dialed per call.
func (c *Client) Send(to, subject, text, html string) error {
	message := mail.NewMessage()

	message.SetHeader("From", c.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)

	message.SetBody("text/plain", text)
	if html != "" {
		message.AddAlternative("text/html", html)
	}

	dialer := mail.NewDialer(c.smtpHost, c.smtpPort, c.username, c.password)
	if c.timeout > 0 {
		dialer.Timeout = c.timeout
	}

	return dialer.DialAndSend(message)
}
