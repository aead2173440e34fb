package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// ParseDate accepts "2006-01-02" or an RFC 3339 timestamp and returns a UTC time
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t.UTC(), nil
}

// ParseOptionalDate returns nil for a nil or blank input
func ParseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatOptionalDate renders t as YYYY-MM-DD, or nil
func FormatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(DateLayout)
	return &s
}

// MarshalJSON writes both bounds as YYYY-MM-DD
func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start *string `json:"start,omitempty"`
		End   *string `json:"end,omitempty"`
	}{FormatOptionalDate(r.Start), FormatOptionalDate(r.End)})
}

// UnmarshalJSON reads bounds given as YYYY-MM-DD or RFC 3339; empty strings leave a bound unset
func (r *DateRange) UnmarshalJSON(data []byte) error {
	var raw struct {
		Start *string `json:"start"`
		End   *string `json:"end"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := ParseOptionalDate(raw.Start)
	if err != nil {
		return err
	}
	end, err := ParseOptionalDate(raw.End)
	if err != nil {
		return err
	}
	*r = DateRange{Start: start, End: end}
	return nil
}
