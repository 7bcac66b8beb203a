package order

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidPickupTime = errors.New("invalid pickup time, expected HH:MM")

// ParsePickupTime turns a 24-hour "HH:MM" string into the next pickup instant after now.
// The clock time is taken on now's date in now's location; if that instant is not strictly
// after now it is moved forward by exactly one day.
func ParsePickupTime(input string, now time.Time) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(input), ":")
	if len(parts) != 2 {
		return time.Time{}, ErrInvalidPickupTime
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, ErrInvalidPickupTime
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, ErrInvalidPickupTime
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, ErrInvalidPickupTime
	}

	pickup := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !pickup.After(now) {
		pickup = pickup.AddDate(0, 0, 1)
	}
	return pickup, nil
}
