package mailservice

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/go-mail/mail/v2"
)

type MailService struct {
	m       Mailer
	logger  MailLogger
	siteURL string
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

type Mail struct {
	dialer Dialer
	parser TemplateParser
	sender string
}

type Mailer interface {
	Send(recipient string, data any, templateFile string) error
}

type Template struct {
	mu     sync.Mutex
	parsed map[string]*template.Template
}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}

// WelcomeData is rendered by welcome.tmpl.
type WelcomeData struct {
	FullName  string
	SigninURL string
}
