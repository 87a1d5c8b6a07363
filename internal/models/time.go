package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// APITime handles the remote training-log API timestamp format. The API
// emits RFC 3339 but some older export fields carry date-only values.
type APITime struct {
	time.Time
}

const apiDateOnlyLayout = "2006-01-02"

func (t *APITime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return t.Parse(s)
}

func (t APITime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339))
}

// Parse parses an API time string, trying RFC 3339 first, then date-only.
func (t *APITime) Parse(s string) error {
	parsed, err := time.Parse(time.RFC3339, s)
	if err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err2 := time.Parse(apiDateOnlyLayout, s)
	if err2 == nil {
		t.Time = parsed
		return nil
	}
	return fmt.Errorf("cannot parse API time %q: %w", s, err)
}
