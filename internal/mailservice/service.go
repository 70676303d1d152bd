package mailservice

import (
	"log/slog"
	"strings"
)

const welcomeTemplate = "welcome.tmpl"

// NewMailService returns a service that mails through m. siteURL is used to build links back to the blog.
func NewMailService(m Mailer, logger MailLogger, siteURL string) *MailService {
	return &MailService{m: m, logger: logger, siteURL: strings.TrimRight(siteURL, "/")}
}

// SendWelcome greets a newly registered user. Delivery happens inline; the error is returned so
// the caller decides whether it matters.
func (s *MailService) SendWelcome(email, fullName string) error {
	data := WelcomeData{
		FullName:  fullName,
		SigninURL: s.siteURL + "/user/signin",
	}

	if err := s.m.Send(email, data, welcomeTemplate); err != nil {
		s.logger.Error("failed to send welcome email", slog.String("email", email), slog.String("error", err.Error()))
		return err
	}

	s.logger.Info("welcome email sent", slog.String("email", email))

	return nil
}
