package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The backend carries dates of birth as dd-MM-yyyy strings, while
// interactive input uses the ISO-style yyyy-MM-dd order.

// ParseWireDate converts a dd-MM-yyyy string into a time.Time. Exactly
// three numeric parts are required; anything else is an error. Parts do not
// need zero padding ("4-7-2001" is accepted), matching how lenient the
// backend is about what it stores.
func ParseWireDate(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q: want dd-MM-yyyy", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		nums[i] = n
	}

	return time.Date(nums[2], time.Month(nums[1]), nums[0], 0, 0, 0, 0, time.UTC), nil
}

// FormatWireDate renders t as dd-MM-yyyy.
func FormatWireDate(t time.Time) string {
	return t.Format("02-01-2006")
}

// InputToWireDate reorders a yyyy-MM-dd input string into dd-MM-yyyy.
// This is a pure textual swap: the original parts are kept verbatim, no
// calendar validation happens here.
func InputToWireDate(s string) (string, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid date %q: want yyyy-MM-dd", s)
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0], nil
}
