package transaction

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Day-first layouts come before canonical ones so "01.02.2020" is always 1 February.
var dateLayouts = []string{
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
	"02-01-2006 15:04:05",
	"02-01-2006",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"2.1.2006 15:04:05",
	"2.1.2006 15:04",
	"2.1.2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var errUnknownLayout = errors.New("unrecognised date layout")

// ParseDate parses a day-first date-time string in the local time zone.
func ParseDate(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, &ParseError{Value: s, Err: errors.New("empty date")}
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Value: s, Err: errUnknownLayout}
}

// NormalizeDate turns a string or timestamp into a timestamp. Timestamps pass through.
func NormalizeDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case *time.Time:
		if d == nil {
			return time.Time{}, &InvalidInputError{Field: "date", Reason: "nil timestamp"}
		}
		return *d, nil
	case string:
		return ParseDate(d)
	default:
		return time.Time{}, &InvalidInputError{Field: "date", Reason: fmt.Sprintf("unsupported type %T", v)}
	}
}
