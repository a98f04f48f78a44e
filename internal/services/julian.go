package services

import (
	"fmt"
	"math"
	"natal-chart-service/internal/domain"
	"regexp"
	"strings"
	"time"
)

// time.Parse takes "9:30" for "15:04"; two-digit fields are required here.
var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)

// ParseBirthMoment validates a YYYY-MM-DD date and an HH:MM[:SS] clock time.
// Impossible calendar dates (2023-02-30) and clock values (24:00) are rejected.
func ParseBirthMoment(date string, clock string) (domain.BirthMoment, error) {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return domain.BirthMoment{}, fmt.Errorf("parse birth date %q: %w", date, domain.ErrInvalidInput)
	}

	clock = strings.TrimSpace(clock)
	if !clockPattern.MatchString(clock) {
		return domain.BirthMoment{}, fmt.Errorf("parse birth time %q: %w", clock, domain.ErrInvalidInput)
	}
	layout := "15:04"
	if strings.Count(clock, ":") == 2 {
		layout = "15:04:05"
	}
	c, err := time.Parse(layout, clock)
	if err != nil {
		return domain.BirthMoment{}, fmt.Errorf("parse birth time %q: %w", clock, domain.ErrInvalidInput)
	}

	return domain.BirthMoment{
		Year:   d.Year(),
		Month:  int(d.Month()),
		Day:    d.Day(),
		Hour:   c.Hour(),
		Minute: c.Minute(),
		Second: c.Second(),
	}, nil
}

// JulianDay converts a calendar moment to a Julian Day number on the
// proleptic Gregorian calendar. The clock time is taken as-is as the
// calculation instant; no timezone arithmetic is applied.
func JulianDay(m domain.BirthMoment) float64 {
	year := m.Year
	month := m.Month
	if month <= 2 {
		year--
		month += 12
	}

	a := math.Floor(float64(year) / 100)
	b := 2 - a + math.Floor(a/4)

	hours := float64(m.Hour) + float64(m.Minute)/60 + float64(m.Second)/3600

	return math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(m.Day) + b - 1524.5 +
		hours/24
}
