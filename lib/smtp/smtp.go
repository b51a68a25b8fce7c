package smtp

import (
	"bytes"
	"fmt"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

const subjectPrefix = "PTW"

var Instance Provider

type Provider interface {
	SendHTML(to []string, subject, html, text string) error
	IsConfigured() bool
}

func Connect(user, password, host, port, from string, tlsEnabled bool) error {
	if from == "" {
		from = user
	}
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		from:       from,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	from       string
	tlsEnabled bool
}

func (i impl) IsConfigured() bool {
	return i.user != "" && i.host != "" && i.port != ""
}

// SendHTML sends an html message with a plain text alternative.
func (i impl) SendHTML(to []string, subject, html, text string) error {
	if len(to) == 0 {
		return nil
	}
	msg := buildMessage(i.from, to, subject, html, text)
	return i.send(to, msg)
}

func buildMessage(from string, to []string, subject, html, text string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", fmt.Sprintf("%s - %s", subjectPrefix, subject))
	switch {
	case html != "" && text != "":
		msg.SetBody("text/plain", text)
		msg.AddAlternative("text/html", html)
	case html != "":
		msg.SetBody("text/html", html)
	default:
		msg.SetBody("text/plain", text)
	}
	return msg
}

func (i impl) send(to []string, msg *gomail.Message) (err error) {
	logger := log.WithField("recipients", to)
	if !i.IsConfigured() {
		logger.Warn("email not sent, smtp client is not configured")
		return nil
	}
	buf := new(bytes.Buffer)
	if _, err = msg.WriteTo(buf); err != nil {
		return errors.Wrap(err, "error building email")
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	addr := i.host + ":" + i.port
	if i.tlsEnabled {
		err = smtp.SendMailTLS(addr, auth, i.user, to, buf)
	} else {
		err = smtp.SendMail(addr, auth, i.user, to, buf)
	}
	if err != nil {
		logger.WithError(err).Error("error sending email")
		return errors.Wrap(err, "error sending email")
	}
	logger.Info("email sent")
	return nil
}
