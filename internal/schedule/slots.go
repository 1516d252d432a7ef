package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ankithstudio/mediadesk/internal/models"
)

// Fixed daily rhythm per media kind. Videos get the four early slots, images
// fill the half-hour gaps between them.
var (
	videoSlotTimes = []string{"00:00", "02:00", "04:00", "06:00"}
	imageSlotTimes = []string{"00:30", "01:00", "01:30", "02:30", "03:00", "03:30", "04:30", "05:00", "05:30", "06:30"}
)

// Overflow base hours for items beyond the slot tables. The assigned hour is
// base + index, normalized by date arithmetic (it may carry into the next
// calendar day).
const (
	videoOverflowHour = 12
	imageOverflowHour = 18
)

// TargetDate returns tomorrow at local midnight, the default calendar day the
// slot tables are applied to.
func TargetDate(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}

// SlotTime maps the i-th pending item of a media kind onto the target date.
// Allocation is deterministic: it depends only on the kind, the index and the
// date.
func SlotTime(mediaType string, index int, date time.Time) time.Time {
	table := imageSlotTimes
	overflow := imageOverflowHour
	if mediaType == models.MediaTypeVideo {
		table = videoSlotTimes
		overflow = videoOverflowHour
	}

	if index < len(table) {
		hour, minute := splitClock(table[index])
		return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
	}

	return time.Date(date.Year(), date.Month(), date.Day(), overflow+index, 0, 0, 0, date.Location())
}

// ParseExplicit parses an operator-supplied explicit publish time. RFC 3339
// is the wire format; the datetime-local form the dashboard sends is accepted
// as a fallback.
func ParseExplicit(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid scheduled time %q: %w", value, err)
	}
	return t, nil
}

// Resolve returns the publish timestamp for the item at position index within
// its partition: the explicit time when one is given, otherwise the slot for
// that index on the target date.
func Resolve(explicitTime, mediaType string, index int, date time.Time) (time.Time, error) {
	if explicitTime != "" {
		return ParseExplicit(explicitTime)
	}
	return SlotTime(mediaType, index, date), nil
}

func splitClock(clock string) (hour, minute int) {
	parts := strings.SplitN(clock, ":", 2)
	hour, _ = strconv.Atoi(parts[0])
	minute, _ = strconv.Atoi(parts[1])
	return hour, minute
}
