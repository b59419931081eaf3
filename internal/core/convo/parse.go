package convo

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var errBadDateTime = errors.New("invalid date-time")

// ParseDateTime parses the strict `YYYY-MM-DD HH:MM` format: a four-digit
// year, 1-2 digit month, day, 24-hour hour and minute, interpreted as
// local wall-clock time.
//
// time.Date normalizes out-of-range components (month 13 rolls into the
// next year), so the parsed instant is checked against the inputs to
// reject dates like 2024-02-31.
func ParseDateTime(input string) (time.Time, error) {
	parts := strings.Fields(strings.TrimSpace(input))
	if len(parts) != 2 {
		return time.Time{}, errBadDateTime
	}

	dateParts := strings.Split(parts[0], "-")
	timeParts := strings.Split(parts[1], ":")
	if len(dateParts) != 3 || len(timeParts) != 2 {
		return time.Time{}, errBadDateTime
	}
	if len(dateParts[0]) != 4 {
		return time.Time{}, errBadDateTime
	}

	nums := make([]int, 0, 5)
	for _, s := range append(dateParts, timeParts...) {
		if s == "" || len(s) > 4 {
			return time.Time{}, errBadDateTime
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return time.Time{}, errBadDateTime
		}
		nums = append(nums, n)
	}

	year, month, day, hour, minute := nums[0], nums[1], nums[2], nums[3], nums[4]

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute {
		return time.Time{}, errBadDateTime
	}

	return t, nil
}
