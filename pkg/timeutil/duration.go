package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is the horizon used when none is given.
const DefaultWindow = "4w"

var (
	segmentPattern = regexp.MustCompile(`^(\d+)([wdhms])`)
	segmentUnits   = map[string]time.Duration{
		"w": 7 * 24 * time.Hour,
		"d": 24 * time.Hour,
		"h": time.Hour,
		"m": time.Minute,
		"s": time.Second,
	}
)

// ParseWindow parses a compact horizon string such as "4w", "10d" or "1w3d"
// and returns the duration together with its canonical rendering. An empty
// input falls back to DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		s = DefaultWindow
	}

	var total time.Duration
	for rest := s; rest != ""; {
		m := segmentPattern.FindStringSubmatch(rest)
		if m == nil {
			return 0, "", fmt.Errorf("invalid horizon segment %q", rest)
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid horizon value %q: %w", m[1], err)
		}
		total += time.Duration(n) * segmentUnits[m[2]]
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("horizon must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders a duration with the largest fitting w/d/h/m/s tokens.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range []string{"w", "d", "h", "m", "s"} {
		size := segmentUnits[u]
		if d < size {
			continue
		}
		fmt.Fprintf(&b, "%d%s", d/size, u)
		d %= size
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}
