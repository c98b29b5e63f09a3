package timeutil

import (
	"encoding/json"
	"fmt"
	"time"
)

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp wraps time.Time with RFC3339 JSON encoding that preserves the
// original zone offset. The zero value marshals to the empty string.
type Timestamp struct {
	time.Time
}

func (t Timestamp) SameDay(then time.Time) bool {
	y1, m1, d1 := t.Time.Date()
	y2, m2, d2 := then.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (t Timestamp) SameMonth(then time.Time) bool {
	y1, m1, _ := t.Time.Date()
	y2, m2, _ := then.Date()
	return y1 == y2 && m1 == m2
}

func (t *Timestamp) MarshalJSON() ([]byte, error) {
	if t == nil || t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.Format(time.RFC3339))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.Format(time.RFC3339)
}

func FormatTime(v time.Time) string {
	return v.Format(time.RFC3339)
}
