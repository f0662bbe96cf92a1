// Package timeutil parses the compact time windows used by CLI filters.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

var (
	segment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)

	units = []struct {
		label   string
		aliases []string
		value   time.Duration
	}{
		{"w", []string{"w", "wk", "wks", "week", "weeks"}, 7 * day},
		{"d", []string{"d", "day", "days"}, day},
		{"h", []string{"h", "hr", "hrs", "hour", "hours"}, time.Hour},
		{"m", []string{"m", "min", "mins", "minute", "minutes"}, time.Minute},
	}
)

func unitFor(name string) (time.Duration, bool) {
	for _, u := range units {
		for _, a := range u.aliases {
			if a == name {
				return u.value, true
			}
		}
	}
	return 0, false
}

// ParseWindow parses windows such as "3d", "1w2d" or "90 min". An empty
// input is a zero window, meaning no limit.
func ParseWindow(input string) (time.Duration, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, nil
	}
	var total time.Duration
	for remaining != "" {
		m := segment.FindStringSubmatch(remaining)
		if m == nil {
			return 0, fmt.Errorf("timeutil: invalid window segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("timeutil: invalid window value %q: %w", m[1], err)
		}
		unit, ok := unitFor(m[2])
		if !ok {
			return 0, fmt.Errorf("timeutil: unsupported window unit %q", m[2])
		}
		total += time.Duration(n) * unit
		remaining = strings.TrimSpace(remaining[len(m[0]):])
	}
	if total <= 0 {
		return 0, fmt.Errorf("timeutil: window must be greater than zero")
	}
	return total, nil
}

// FormatWindow renders d with the largest units first, e.g. "1w2d".
func FormatWindow(d time.Duration) string {
	if d < time.Minute {
		return "0m"
	}
	var b strings.Builder
	for _, u := range units {
		if d < u.value {
			continue
		}
		fmt.Fprintf(&b, "%d%s", d/u.value, u.label)
		d %= u.value
	}
	return b.String()
}
