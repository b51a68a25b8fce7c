package botnotify

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// SendError posts a failed api call to the alert bot.
func SendError(addr string, code int, method, path, msg string, logger *logrus.Entry) {
	if addr == "" {
		return
	}
	payload := fmt.Sprintf(
		`{"code":%d,"method":%q,"path":%q,"error":%q}`,
		code, method, path, msg)
	resp, err := http.Post(addr, "application/json", strings.NewReader(payload))
	if err != nil {
		logger.WithError(err).Warn("error sending error notification")
		return
	}
	_ = resp.Body.Close()
}
