package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	phoneRe      = regexp.MustCompile(`^1[3-9]\d{9}$`)
	employeeIDRe = regexp.MustCompile(`^[A-Za-z0-9]{3,20}$`)
)

// ValidPhone reports whether s is a mainland mobile number.
func ValidPhone(s string) bool { return phoneRe.MatchString(s) }

// ValidEmployeeID reports whether s is a 3-20 char alphanumeric employee id.
func ValidEmployeeID(s string) bool { return employeeIDRe.MatchString(s) }

// ValidLatitude reports whether v is inside [-90, 90].
func ValidLatitude(v float64) bool { return v >= -90 && v <= 90 }

// ValidLongitude reports whether v is inside [-180, 180].
func ValidLongitude(v float64) bool { return v >= -180 && v <= 180 }

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}
