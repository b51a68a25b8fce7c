package notification

import (
	"embed"
	"fmt"
	"html"
	"regexp"
	"strings"

	"ptw-backend/models"

	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

var placeholderRe = regexp.MustCompile(`#\{([a-z_]+)\}`)

var subjects = map[models.NotificationEvent]string{
	models.EventPermitCreated:      "New Job Permit #{permit_number}",
	models.EventPermitStatusUpdate: "Job Permit #{permit_number}: #{status}",
	models.EventPTWCreated:         "New Permit to Work #{permit_number}",
	models.EventPTWStatusUpdate:    "Permit to Work #{permit_number}: #{status}",
	models.EventPTWCompleted:       "Permit to Work #{permit_number} completed",
	models.EventPermitRevoked:      "#{permit_kind} #{permit_number} revoked",
}

// Fill replaces #{key} placeholders with values from data, HTML escaped.
// Keys missing from data render empty.
func Fill(tmpl string, data map[string]string, escape bool) string {
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(token string) string {
		key := placeholderRe.FindStringSubmatch(token)[1]
		value := data[key]
		if escape {
			return html.EscapeString(value)
		}
		return value
	})
}

// Render builds the subject, the HTML body and the plain text fallback of an event mail.
func Render(event models.NotificationEvent, data map[string]string) (subject, body, text string, err error) {
	subjectTmpl, ok := subjects[event]
	if !ok {
		return "", "", "", errors.Errorf("unknown notification event %q", event)
	}
	raw, err := templateFS.ReadFile(fmt.Sprintf("templates/%s.html", event))
	if err != nil {
		return "", "", "", errors.Wrapf(err, "error reading template of %s", event)
	}
	subject = Fill(subjectTmpl, data, false)
	body = Fill(string(raw), data, true)
	text = strings.Join(nonEmpty(subject, data["next_steps"], data["action_link"]), "\r\n\r\n")
	return subject, body, text, nil
}

func nonEmpty(values ...string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}
