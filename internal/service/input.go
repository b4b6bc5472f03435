package service

import (
	"bytes"
	"encoding/json"
	"time"
)

// OptionalTime distinguishes an absent JSON field from an explicit null.
type OptionalTime struct {
	Set  bool
	Time *time.Time
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Time = nil

	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return invalid("dates must be strings")
	}
	if s == "" {
		return nil
	}

	t, err := parseDate(s)
	if err != nil {
		return err
	}
	o.Time = &t
	return nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, invalid("invalid date %q", s)
}

func stringOr(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

// nowUTC is the service clock. Stored timestamps are always UTC.
var nowUTC = func() time.Time {
	return time.Now().UTC()
}
