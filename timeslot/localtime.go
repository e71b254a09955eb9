package timeslot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// LocalTime is a wall-clock time of day. The zero value is midnight.
// Valid values have an hour in [0,23] and a minute in [0,59]; the
// constructors enforce this, arithmetic wraps around midnight.
type LocalTime struct {
	Hour   int
	Minute int
}

func NewLocalTime(hour, minute int) LocalTime {
	return fromTotalMinutes(hour*60 + minute)
}

// ParseLocalTime parses a zero-padded "HH:MM" string.
func ParseLocalTime(s string) (LocalTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return LocalTime{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return LocalTime{}, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return LocalTime{}, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return LocalTime{}, fmt.Errorf("time %q out of range", s)
	}
	return LocalTime{Hour: hour, Minute: minute}, nil
}

func fromTotalMinutes(total int) LocalTime {
	total %= minutesPerDay
	if total < 0 {
		total += minutesPerDay
	}
	return LocalTime{Hour: total / 60, Minute: total % 60}
}

func (t LocalTime) totalMinutes() int {
	return t.Hour*60 + t.Minute
}

// Compare orders by hour, then minute. It returns -1, 0 or 1.
func (t LocalTime) Compare(other LocalTime) int {
	switch {
	case t.totalMinutes() < other.totalMinutes():
		return -1
	case t.totalMinutes() > other.totalMinutes():
		return 1
	default:
		return 0
	}
}

func (t LocalTime) Before(other LocalTime) bool {
	return t.Compare(other) < 0
}

func (t LocalTime) After(other LocalTime) bool {
	return t.Compare(other) > 0
}

func (t LocalTime) Equal(other LocalTime) bool {
	return t.Compare(other) == 0
}

// AddMinutes returns the time the given number of minutes later,
// wrapping past midnight. Negative values move earlier.
func (t LocalTime) AddMinutes(minutes int) LocalTime {
	return fromTotalMinutes(t.totalMinutes() + minutes)
}

// MinutesUntil returns the signed number of minutes from t to other
// within the same day.
func (t LocalTime) MinutesUntil(other LocalTime) int {
	return other.totalMinutes() - t.totalMinutes()
}

// String formats the time as zero-padded "HH:MM".
func (t LocalTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
