// Package duration turns free-form estimated-time strings ("45 min",
// "1.5 hours", "about 2h") into a whole number of minutes.
package duration

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/waypointhq/waypoint-cli/internal/constants"
)

var (
	// The marker may be glued to the number ("2h", "1hr"), so the left
	// edge accepts a digit where a word boundary cannot exist.
	hourMarker = regexp.MustCompile(`(?i)(\d|\b)(h|hr|hrs|hour|hours)\b`)
	decimalNum = regexp.MustCompile(`\d+(?:\.\d+)?`)
	integerNum = regexp.MustCompile(`\d+`)
)

// ParseMinutes extracts a positive whole number of minutes from text.
// Hour markers take precedence; minute markers and bare numbers both
// read the first integer as minutes. Anything unparseable yields the
// default estimate. ParseMinutes never fails and always returns a
// value > 0.
func ParseMinutes(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return constants.DefaultTaskMinutes
	}

	if hourMarker.MatchString(text) {
		if raw := decimalNum.FindString(text); raw != "" {
			hours, err := strconv.ParseFloat(raw, 64)
			if err == nil && !math.IsNaN(hours) && !math.IsInf(hours, 0) && hours > 0 {
				if mins := int(math.Round(hours * 60)); mins > 0 {
					return mins
				}
			}
		}
		return constants.DefaultTaskMinutes
	}

	// With or without a minute marker, the first integer is the estimate.
	return firstInteger(text)
}

// firstInteger returns the first integer in text as minutes, or the
// default estimate when none is found or the value is non-positive.
func firstInteger(text string) int {
	if raw := integerNum.FindString(text); raw != "" {
		mins, err := strconv.Atoi(raw)
		if err == nil && mins > 0 {
			return mins
		}
	}
	return constants.DefaultTaskMinutes
}
