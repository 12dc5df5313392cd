package sender

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"storefront/config"

	gopkgmail "gopkg.in/gomail.v2"
)

//go:embed templates/*
var templatesFS embed.FS

type EmailNotification struct {
	To       string
	Subject  string
	Template string // имя шаблона без расширения, например "order_placed"
	Data     any
}

type dialer interface {
	DialAndSend(m ...*gopkgmail.Message) error
}

type EmailSender struct {
	from   string
	dialer dialer
	html   *htmltemplate.Template
	plain  *texttemplate.Template
}

func NewEmailSender(cfg *config.Notifier) (*EmailSender, error) {
	d := gopkgmail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	d.SSL = cfg.SMTPPort == 465
	return newEmailSender(cfg.SMTPFrom, d)
}

func newEmailSender(from string, d dialer) (*EmailSender, error) {
	html, err := htmltemplate.New("html").Funcs(htmltemplate.FuncMap(funcs)).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	plain, err := texttemplate.New("plain").Funcs(funcs).ParseFS(templatesFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &EmailSender{from: from, dialer: d, html: html, plain: plain}, nil
}

func (s *EmailSender) SendEmail(n EmailNotification) error {
	htmlBody, plainBody, err := s.Render(n.Template, n.Data)
	if err != nil {
		return err
	}

	m := gopkgmail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", n.To)
	m.SetHeader("Subject", n.Subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	return s.dialer.DialAndSend(m)
}

// Render возвращает html и plain-text версии письма.
func (s *EmailSender) Render(name string, data any) (string, string, error) {
	var hb, pb bytes.Buffer
	if err := s.html.ExecuteTemplate(&hb, name+".html", data); err != nil {
		return "", "", fmt.Errorf("render html: %w", err)
	}
	if err := s.plain.ExecuteTemplate(&pb, name+".txt", data); err != nil {
		return "", "", fmt.Errorf("render plain: %w", err)
	}
	return hb.String(), pb.String(), nil
}
