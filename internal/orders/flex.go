package orders

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/freightdeck/freightdeck/internal/docstore"
)

// CoerceAmount turns a free-form amount string into a number by
// stripping everything except digits and dots. Unparseable input,
// including strings with no digits at all, coerces to 0.
func CoerceAmount(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return value
}

// dateLayouts are tried in order when a date arrives as a plain string.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ParseFlexTime normalizes the three timestamp shapes seen in stored
// documents: a structured object with epoch seconds, a bare number of
// epoch seconds, or a date string.
func ParseFlexTime(v any) (time.Time, bool) {
	switch value := v.(type) {
	case nil:
		return time.Time{}, false
	case map[string]any:
		secs := docstore.Document(value).FirstString("seconds", "_seconds")
		if secs == "" {
			return time.Time{}, false
		}
		return time.Unix(cast.ToInt64(secs), 0).UTC(), true
	case float64:
		if value <= 0 {
			return time.Time{}, false
		}
		return time.Unix(int64(value), 0).UTC(), true
	case int64:
		if value <= 0 {
			return time.Time{}, false
		}
		return time.Unix(value, 0).UTC(), true
	case string:
		raw := strings.TrimSpace(value)
		if raw == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.UTC(), true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// fallbackDateFields are tried, in order, when createdAt is absent or
// malformed.
var fallbackDateFields = []string{"booking_date", "date", "order_date"}

// EffectiveDate resolves the order's date through the ordered fallback
// chain, defaulting to now when every candidate fails.
func (o Order) EffectiveDate(now time.Time) time.Time {
	if t, ok := ParseFlexTime(o.Doc["createdAt"]); ok {
		return t
	}
	for _, field := range fallbackDateFields {
		if t, ok := ParseFlexTime(o.Doc[field]); ok {
			return t
		}
	}
	return now
}
