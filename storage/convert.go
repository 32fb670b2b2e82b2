package storage

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. The slash layouts are day-first.
var dateLayouts = []string{
	"20060102T150405",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"20060102",
	"02/01/2006",
	"02/01/2006 15:04",
	"2/1/2006",
	"2/1/2006 15:04",
}

// parseDate parses a sale date, keeping only the calendar date.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// toFloat coerces a database or text value to float64. NULL becomes 0.
func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case []byte:
		return parseFloat(string(x))
	case string:
		return parseFloat(x)
	}
	return 0, fmt.Errorf("cannot convert %T to a number", v)
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	switch strings.ToLower(s) {
	case "true", "t":
		return 1, nil
	case "false", "f":
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// toInt coerces through float and truncates toward zero.
func toInt(v any) (int, error) {
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// toID coerces through float, truncates and drops the sign.
func toID(v any) (int64, error) {
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	return int64(math.Abs(math.Trunc(f))), nil
}

func toBool(v any) (bool, error) {
	f, err := toFloat(v)
	if err != nil {
		return false, err
	}
	return f != 0, nil
}

// toDate accepts driver time values or text dates.
func toDate(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		y, m, d := x.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	case []byte:
		return parseDate(string(x))
	case string:
		return parseDate(x)
	}
	return time.Time{}, fmt.Errorf("cannot convert %T to a date", v)
}
