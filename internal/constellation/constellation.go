// Package constellation aggregates per-body ephemeris lookups into a
// backmapped heliospheric constellation for a single date.
package constellation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/litescript/ls-heliomap/internal/astro"
	"github.com/litescript/ls-heliomap/internal/catalog"
	"github.com/litescript/ls-heliomap/internal/ephem"
)

// DefaultVsw is the solar wind speed in km/s assumed for bodies without an
// explicit speed.
const DefaultVsw = 400.0

var (
	// ErrInvalidParameter indicates a rejected input before any lookup.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrFatalLookup indicates Earth's position could not be resolved, so
	// no reference frame exists for the run.
	ErrFatalLookup = errors.New("cannot resolve Earth position")

	// ErrEmptyResult indicates that no body in the list resolved.
	ErrEmptyResult = errors.New("no bodies resolved")
)

// Options are the inputs for one constellation computation.
type Options struct {
	Date   time.Time
	Bodies []string  // body names or numeric NAIF IDs, in display order
	Vsw    []float64 // km/s, parallel to Bodies; missing entries default to DefaultVsw
	RefLon *float64  // optional Carrington reference longitude, degrees
	RefLat *float64  // optional heliographic reference latitude, degrees
}

// Entry is the derived record for one resolved body.
type Entry struct {
	Body catalog.Body
	Pos  ephem.Position
	Vsw  float64 // km/s

	LonSepEarth float64 // longitudinal separation from Earth, degrees
	LatSepEarth float64 // latitudinal separation from Earth, degrees

	Alpha        float64 // backmapping angle, degrees
	FootpointLon float64 // magnetic footpoint Carrington longitude, [0, 360)

	// Separations against the caller's reference point; NaN when no
	// reference was supplied.
	FootpointSepRef float64
	LonSepRef       float64
	LatSepRef       float64
}

// Constellation is the whole-run aggregate. Built once by Build and
// read-only thereafter.
type Constellation struct {
	Date    time.Time
	Earth   ephem.Position
	Entries []Entry  // input order
	Skipped []string // bodies excluded by per-body lookup failures
	MaxDist float64  // maximum heliocentric distance among resolved bodies, AU

	RefLon *float64
	RefLat *float64
}

// Build resolves every body in opts at opts.Date and derives separations
// and magnetic footpoints. Earth must resolve; individual body failures
// are logged and skipped.
func Build(ctx context.Context, provider ephem.Provider, cat *catalog.Catalog, opts Options, log *logrus.Logger) (*Constellation, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	earth, err := provider.Lookup(ctx, ephem.EarthID, opts.Date)
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %v", ErrFatalLookup, opts.Date.Format(time.RFC3339), err)
	}

	c := &Constellation{
		Date:   opts.Date,
		Earth:  earth,
		RefLon: opts.RefLon,
		RefLat: opts.RefLat,
	}

	for i, name := range opts.Bodies {
		vsw := DefaultVsw
		if i < len(opts.Vsw) {
			vsw = opts.Vsw[i]
		}

		body, err := cat.Get(name)
		if err != nil {
			log.WithField("body", name).Warnf("skipping: %v", err)
			c.Skipped = append(c.Skipped, name)
			continue
		}

		pos, err := provider.Lookup(ctx, body.ID, opts.Date)
		if err != nil {
			log.WithFields(logrus.Fields{"body": name, "date": opts.Date}).
				Warnf("no ephemeris: %v", err)
			c.Skipped = append(c.Skipped, name)
			continue
		}

		entry, err := derive(body, pos, vsw, earth, opts)
		if err != nil {
			return nil, err
		}
		c.Entries = append(c.Entries, entry)
	}

	if len(c.Entries) == 0 {
		return nil, fmt.Errorf("%w for date %s", ErrEmptyResult, opts.Date.Format(time.RFC3339))
	}

	for _, e := range c.Entries {
		if e.Pos.DistAU > c.MaxDist {
			c.MaxDist = e.Pos.DistAU
		}
	}

	return c, nil
}

// derive computes the per-body separations and backmapped footpoint.
func derive(body catalog.Body, pos ephem.Position, vsw float64, earth ephem.Position, opts Options) (Entry, error) {
	sep, alpha, err := astro.Backmap(pos.LonDeg, pos.DistAU, vsw, opts.RefLon)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	e := Entry{
		Body:            body,
		Pos:             pos,
		Vsw:             vsw,
		LonSepEarth:     astro.AngularSeparation(pos.LonDeg, earth.LonDeg),
		LatSepEarth:     pos.LatDeg - earth.LatDeg,
		Alpha:           alpha,
		FootpointLon:    astro.FootpointLongitude(pos.LonDeg, alpha),
		FootpointSepRef: sep,
		LonSepRef:       math.NaN(),
		LatSepRef:       math.NaN(),
	}

	if opts.RefLon != nil {
		e.LonSepRef = astro.AngularSeparation(pos.LonDeg, *opts.RefLon)
	}
	if opts.RefLat != nil {
		e.LatSepRef = pos.LatDeg - *opts.RefLat
	}

	return e, nil
}

// validate rejects malformed inputs before any lookup is attempted.
func validate(opts Options) error {
	if opts.Date.IsZero() {
		return fmt.Errorf("%w: date is not set", ErrInvalidParameter)
	}
	if len(opts.Bodies) == 0 {
		return fmt.Errorf("%w: empty body list", ErrInvalidParameter)
	}
	if len(opts.Vsw) > len(opts.Bodies) {
		return fmt.Errorf("%w: %d wind speeds for %d bodies", ErrInvalidParameter, len(opts.Vsw), len(opts.Bodies))
	}
	for i, v := range opts.Vsw {
		if v <= 0 {
			return fmt.Errorf("%w: wind speed %v km/s for body %q", ErrInvalidParameter, v, opts.Bodies[i])
		}
	}
	return nil
}
