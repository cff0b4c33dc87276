package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/matrix-service/internal/config"
	"github.com/Dan9191/matrix-service/internal/service"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	s := &Sender{cfg: cfg, logger: logger}
	s.send = func(e *email.Email) error {
		addr := fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort)
		var auth smtp.Auth
		if cfg.SMTPUsername != "" {
			auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
		}
		return e.Send(addr, auth)
	}
	return s
}

// BuildDigest formats the monthly forecast mail for one saved date
func (s *Sender) BuildDigest(item service.DigestItem) *email.Email {
	p := item.Period
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{item.Email}
	e.Subject = fmt.Sprintf("Your personal month: %s – %s",
		p.Segment.Start.Format("02.01.2006"), p.Segment.End.Format("02.01.2006"))

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", item.Username)
	if item.Label != "" {
		fmt.Fprintf(&b, "Forecast for \"%s\" (%s).\n\n", item.Label, p.Date)
	} else {
		fmt.Fprintf(&b, "Forecast for %s.\n\n", p.Date)
	}
	fmt.Fprintf(&b, "Personal year %d–%d, segment %d of 12, energy %d.\n",
		p.Year.TargetYear-1, p.Year.TargetYear, p.Segment.Seq+1, p.Segment.Value)

	m := p.Month.Matrix
	fmt.Fprintf(&b, "Month matrix (age %d): center %d, points %v.\n", p.Age, m.Center(), m.Values)
	fmt.Fprintf(&b, "Money channel: %v. Relationship channel: %v.\n",
		p.Month.Channels.Money, p.Month.Channels.Relationship)

	b.WriteString("\nBest regards,\nMatrix Service")
	e.Text = []byte(b.String())
	return e
}

// SendDigest mails one digest item
func (s *Sender) SendDigest(item service.DigestItem) error {
	e := s.BuildDigest(item)
	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send digest to %s: %v", item.Email, err)
		return fmt.Errorf("failed to send digest: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", item.Email, e.Subject)
	return nil
}
