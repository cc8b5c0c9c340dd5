package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider delivers mail over SMTP using gomail.
type SMTPProvider struct {
	config   *Config
	renderer *TemplateManager
}

func NewSMTPProvider(config *Config) *SMTPProvider {
	return &SMTPProvider{
		config:   config,
		renderer: NewTemplateManager(),
	}
}

func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	d := gomail.NewDialer(p.config.Host, p.config.Port, p.config.Username, p.config.Password)
	return d.DialAndSend(m)
}

func (p *SMTPProvider) SendVerification(to string, token string) error {
	verifyURL := fmt.Sprintf("%s?token=%s", p.config.VerifyURL, token)

	html, err := p.renderer.Render("base", TemplateData{
		Subject:    "Verify your email address",
		Message:    "Welcome to Collabra. Confirm your email address to continue onboarding. The link is valid for 24 hours.",
		ActionURL:  verifyURL,
		ActionText: "Verify email",
	})
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Verify your email address",
		Body:     "Confirm your email address: " + verifyURL,
		HTMLBody: html,
	})
}

func (p *SMTPProvider) SendDocumentDecision(to string, documentType string, approved bool, reason string) error {
	subject := "Your document was approved"
	message := fmt.Sprintf("Your %s document has been reviewed and approved.", documentType)
	if !approved {
		subject = "Your document was rejected"
		message = fmt.Sprintf("Your %s document was rejected: %s. You can submit a new document from your dashboard.", documentType, reason)
	}

	html, err := p.renderer.Render("base", TemplateData{
		Subject: subject,
		Message: message,
	})
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  subject,
		Body:     message,
		HTMLBody: html,
	})
}

func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}
	if p.config.FromEmail == "" {
		return fmt.Errorf("from address is required")
	}
	return nil
}

func (p *SMTPProvider) Close() error {
	return nil
}
