package initializers

import (
	"ptw-backend/config"
	"ptw-backend/lib/smtp"

	log "github.com/sirupsen/logrus"
)

func InitSmtp() {
	conf := config.Conf.Smtp
	err := smtp.Connect(conf.User, conf.Password, conf.Host, conf.Port, conf.From, conf.TLSEnabled == nil || *conf.TLSEnabled)
	if err != nil {
		panic(err.Error())
	}
	if !smtp.Instance.IsConfigured() {
		log.Warn("smtp is not configured, notification mails stay queued")
	}
}
