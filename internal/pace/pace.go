package pace

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	metersPerKilometer = 1000.0
	metersPerMile      = 1609.344
	marathonMeters     = 42195.0
)

var (
	// ErrBadDuration is returned for times not in mm:ss or hh:mm:ss form.
	ErrBadDuration = errors.New("time must be mm:ss or hh:mm:ss")

	// ErrBadDistance is returned for unparseable distances.
	ErrBadDistance = errors.New("distance must be a number with an optional unit (m, km, mi) or a named race")
)

var (
	durationPattern = regexp.MustCompile(`^(?:(\d{1,2}):)?(\d{1,2}):(\d{2})$`)
	distancePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(m|km|k|mi|mile|miles)?$`)
)

// Named race distances accepted in place of a number+unit.
var namedDistances = map[string]float64{
	"marathon":      marathonMeters,
	"half":          marathonMeters / 2,
	"half marathon": marathonMeters / 2,
	"10k":           10 * metersPerKilometer,
	"5k":            5 * metersPerKilometer,
}

// ParseDuration parses "mm:ss" or "hh:mm:ss" into a Duration.
func ParseDuration(s string) (time.Duration, error) {
	m := durationPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, ErrBadDuration
	}

	hours := 0
	if m[1] != "" {
		hours, _ = strconv.Atoi(m[1])
	}
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	if minutes > 59 && hours > 0 {
		return 0, ErrBadDuration
	}
	if seconds > 59 {
		return 0, ErrBadDuration
	}

	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second
	if total <= 0 {
		return 0, ErrBadDuration
	}
	return total, nil
}

// ParseDistance parses a distance string ("10km", "5 mi", "400m", "13.1")
// or a named race ("marathon", "half") into meters. A bare number is
// kilometers.
func ParseDistance(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if meters, ok := namedDistances[s]; ok {
		return meters, nil
	}

	m := distancePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, ErrBadDistance
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil || value <= 0 {
		return 0, ErrBadDistance
	}

	switch m[2] {
	case "m":
		return value, nil
	case "mi", "mile", "miles":
		return value * metersPerMile, nil
	default: // "km", "k", or no unit
		return value * metersPerKilometer, nil
	}
}

// Result holds the derived pace and speed figures for one run.
type Result struct {
	PacePerKm   string  `json:"pace_per_km"`
	PacePerMile string  `json:"pace_per_mile"`
	SpeedKmh    float64 `json:"speed_kmh"`
	SpeedMph    float64 `json:"speed_mph"`
}

// Calculate derives pace per km/mile and average speed from a distance in
// meters and a total duration.
func Calculate(meters float64, total time.Duration) Result {
	perKm := time.Duration(float64(total) / (meters / metersPerKilometer))
	perMile := time.Duration(float64(total) / (meters / metersPerMile))
	hours := total.Hours()

	return Result{
		PacePerKm:   FormatPace(perKm),
		PacePerMile: FormatPace(perMile),
		SpeedKmh:    round2(meters / metersPerKilometer / hours),
		SpeedMph:    round2(meters / metersPerMile / hours),
	}
}

// FormatPace renders a per-unit duration as "m:ss" (or "h:mm:ss" for
// paces of an hour or more), with seconds rounded to the nearest whole.
func FormatPace(d time.Duration) string {
	totalSeconds := int(math.Round(d.Seconds()))
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
