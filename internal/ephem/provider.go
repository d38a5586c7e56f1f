// Package ephem provides Sun-centered Carrington positions for solar-system
// bodies and spacecraft.
package ephem

import (
	"context"
	"errors"
	"time"
)

// TargetID is a NAIF SPICE ID for a spacecraft or body.
type TargetID int

// EarthID is the NAIF ID of the Earth.
const EarthID TargetID = 399

// Position is the result of an ephemeris query for a body at a fixed date,
// expressed in the Sun-centered Carrington rotating frame.
type Position struct {
	LonDeg float64 // Carrington longitude, [0, 360)
	LatDeg float64 // Heliographic latitude
	DistAU float64 // Heliocentric distance in AU
}

// ErrNotFound indicates that no ephemeris exists for a target/date pair.
// Callers can recover from this per body; other errors are transport
// failures and should propagate.
var ErrNotFound = errors.New("no ephemeris for target")

// Provider defines the interface for ephemeris data sources.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// Lookup returns the Carrington position of a target at time t.
	// Returns an error wrapping ErrNotFound if the target has no
	// ephemeris for that date.
	Lookup(ctx context.Context, target TargetID, t time.Time) (Position, error)
}
