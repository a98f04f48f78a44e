package domain

import "errors"

var (
	// ErrInvalidInput reports a malformed date, time or location that reached the engine.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUndefinedHouseGeometry reports that the house system has no solution
	// at the requested place and time, typically inside the polar circles.
	ErrUndefinedHouseGeometry = errors.New("house geometry undefined at this location")

	// ErrPositionUnavailable reports that the ephemeris could not produce a body position.
	ErrPositionUnavailable = errors.New("body position unavailable")

	// ErrInconsistentCusps reports a cusp array whose arcs do not cover a longitude.
	ErrInconsistentCusps = errors.New("inconsistent house cusps")
)
