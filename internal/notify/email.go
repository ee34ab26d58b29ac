package notify

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// EmailSender delivers notification mail over SMTP. A zero Host
// disables delivery, so local setups run without a mail server.
type EmailSender struct {
	cfg    SMTPConfig
	logger *log.Logger
}

func NewEmailSender(cfg SMTPConfig, logger *log.Logger) *EmailSender {
	return &EmailSender{cfg: cfg, logger: logger}
}

func (e *EmailSender) Enabled() bool {
	return e != nil && e.cfg.Host != ""
}

func (e *EmailSender) Send(to, subject, body string) error {
	if !e.Enabled() {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(e.cfg.Host, e.cfg.Port, e.cfg.User, e.cfg.Password)
	return d.DialAndSend(m)
}

// SendAsync fires the mail off on its own goroutine. Delivery failures
// are logged and never surface to the caller.
func (e *EmailSender) SendAsync(to, subject, body string) {
	if !e.Enabled() || to == "" {
		return
	}
	go func() {
		if err := e.Send(to, subject, body); err != nil && e.logger != nil {
			e.logger.Printf("notify=email status=error to=%s subject=%q err=%v", to, subject, err)
		}
	}()
}

func assignmentEmailBody(taskTitle string, score float64, dueDate string) string {
	due := ""
	if dueDate != "" {
		due = fmt.Sprintf("<p>Due date: %s</p>", dueDate)
	}
	return fmt.Sprintf(
		`<h3>New task assigned</h3>
<p>You have been assigned to <strong>%s</strong> (suitability %.1f).</p>
%s<p>Open the dashboard to see the details.</p>`,
		taskTitle, score, due,
	)
}

func completionEmailBody(taskTitle, employeeName string) string {
	return fmt.Sprintf(
		`<h3>Task completed</h3>
<p><strong>%s</strong> finished <strong>%s</strong>.</p>`,
		employeeName, taskTitle,
	)
}
