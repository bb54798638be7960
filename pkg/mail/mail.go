package mail

import (
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/espinosa98/rifa-backend/config"
)

// Mailer sends participant notifications over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewMailer creates an SMTP mailer. The connection is dialed per message,
// matching the low sending volume.
func NewMailer(cfg *config.MailConfig, logger *zap.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// SendNumbers mails a participant their allocated raffle numbers together
// with the payment reference and bank account details.
func (m *Mailer) SendNumbers(to, firstName string, numbers []string, reference, bankAccount string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your raffle numbers")
	msg.SetBody("text/html", numbersBody(firstName, numbers, reference, bankAccount))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}

	m.logger.Info("notification mail sent", zap.String("to", to), zap.Int("numbers", len(numbers)))
	return nil
}

// numbersBody renders the notification mail. The name, reference and bank
// account come from the entry form and are escaped before interpolation.
func numbersBody(firstName string, numbers []string, reference, bankAccount string) string {
	var b strings.Builder
	b.WriteString(`<html><body style="font-family: Arial, sans-serif; color: #333;">`)
	b.WriteString(fmt.Sprintf("<h2>Hello %s!</h2>", html.EscapeString(firstName)))
	b.WriteString("<p><strong>Your raffle numbers are:</strong></p>")
	b.WriteString(fmt.Sprintf(`<p style="font-size: 16px;">%s</p>`, strings.Join(numbers, ", ")))
	if bankAccount != "" {
		b.WriteString(fmt.Sprintf("<p>Bank account: %s</p>", html.EscapeString(bankAccount)))
	}
	if reference != "" {
		b.WriteString(fmt.Sprintf("<p>Payment reference: %s</p>", html.EscapeString(reference)))
	}
	b.WriteString(`<hr style="border: 1px solid #ddd;">`)
	b.WriteString("<p>Thank you for participating!</p>")
	b.WriteString("</body></html>")
	return b.String()
}
