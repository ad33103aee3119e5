package units

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"
)

// DefaultDelay is the pause between integrity checks when none is configured.
const DefaultDelay = 30 * time.Second

// delayComponent matches one "<number><unit>" term, allowing a space before the unit.
var delayComponent = regexp.MustCompile(`(\d+(?:\.\d*)?|\.\d+)\s*([^\s\d.+-]+)`)

var unitAliases = map[string]string{
	"nsec": "ns", "nanosecond": "ns", "nanoseconds": "ns",
	"usec": "us", "microsecond": "us", "microseconds": "us",
	"msec": "ms", "millisecond": "ms", "milliseconds": "ms",
	"sec": "s", "secs": "s", "second": "s", "seconds": "s",
	"min": "m", "mins": "m", "minute": "m", "minutes": "m",
	"hr": "h", "hrs": "h", "hour": "h", "hours": "h",
	"day": "d", "days": "d",
	"week": "w", "weeks": "w",
}

// ParseDelay converts a human duration such as "30s", "1h30m", "1h 30m" or
// "2 days" into a time.Duration. Zero is allowed; negative durations are not.
func ParseDelay(input string) (time.Duration, error) {
	d, err := str2duration.ParseDuration(normalizeDelay(input))
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidDuration, input, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w %q: negative durations are not allowed", ErrInvalidDuration, input)
	}
	return d, nil
}

// normalizeDelay rewrites "1 hour 30 min" into "1h30m". Input that is not a
// clean sequence of terms is returned trimmed so the parser reports it.
func normalizeDelay(input string) string {
	trimmed := strings.TrimSpace(input)
	matches := delayComponent.FindAllStringSubmatchIndex(trimmed, -1)
	if len(matches) == 0 {
		return trimmed
	}

	var b strings.Builder
	pos := 0
	for _, m := range matches {
		if strings.TrimSpace(trimmed[pos:m[0]]) != "" {
			return trimmed
		}
		unit := trimmed[m[4]:m[5]]
		if alias, ok := unitAliases[unit]; ok {
			unit = alias
		}
		b.WriteString(trimmed[m[2]:m[3]])
		b.WriteString(unit)
		pos = m[1]
	}
	if strings.TrimSpace(trimmed[pos:]) != "" {
		return trimmed
	}

	return b.String()
}
