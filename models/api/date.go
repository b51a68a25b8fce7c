package apimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

const dateLayout = "2006-01-02"

// Date is a calendar date in requests. Accepts "2006-01-02" or a full RFC 3339 timestamp.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: t}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		d.Time = time.Time{}
		return nil
	}
	if len(value) == len(dateLayout) {
		parsed, err := time.Parse(dateLayout, value)
		if err != nil {
			return errors.Errorf("invalid date %q, expected YYYY-MM-DD", value)
		}
		d.Time = parsed
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return errors.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", value)
	}
	d.Time = parsed
	return nil
}
