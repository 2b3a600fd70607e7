package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// timestampMinuteLayout ISO 8601 без секунд, например 2030-08-01T09:00Z
const timestampMinuteLayout = "2006-01-02T15:04Z07:00"

// Timestamp время из тела запроса: RFC3339 или ISO 8601 с точностью до минут
type Timestamp struct {
	time.Time
}

// ParseTimestamp разбирает RFC3339, затем формат без секунд
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(timestampMinuteLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: expected RFC3339 or YYYY-MM-DDTHH:MMZ", s)
	}
	return t, nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// TimePtr возвращает nil для отсутствующего значения
func TimePtr(t *Timestamp) *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}
