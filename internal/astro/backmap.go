package astro

import (
	"errors"
	"math"
)

// SiderealRotationDays is the Sun's sidereal rotation period in days.
const SiderealRotationDays = 25.38

// Omega is the sidereal solar rotation rate in radians per second.
var Omega = degToRad(360.0 / (SiderealRotationDays * 24 * 60 * 60))

// ErrInvalidWindSpeed indicates a non-positive solar wind speed.
var ErrInvalidWindSpeed = errors.New("solar wind speed must be positive")

// Backmap traces a body's magnetic connection back to the Sun along the
// Parker spiral under a constant solar wind speed.
//
// lonDeg is the body's Carrington longitude in degrees, distAU its
// heliocentric distance in AU, and vswKmS the assumed wind speed in km/s.
// alpha is the backmapping angle: the angle the Sun rotates while a wind
// parcel travels from the surface out to distAU. If refLonDeg is non-nil,
// sep is the separation of the body's magnetic footpoint from that
// reference longitude; otherwise sep is NaN.
func Backmap(lonDeg, distAU, vswKmS float64, refLonDeg *float64) (sep, alpha float64, err error) {
	if vswKmS <= 0 {
		return 0, 0, ErrInvalidWindSpeed
	}

	// Travel time of the wind parcel from Sun to body, in seconds.
	tt := distAU * AU / vswKmS
	alpha = radToDeg(Omega * tt)

	sep = math.NaN()
	if refLonDeg != nil {
		sep = FootpointSeparation(lonDeg+alpha, *refLonDeg)
	}
	return sep, alpha, nil
}

// FootpointSeparation returns the separation a-b between a footpoint
// longitude and a reference longitude. The wrap is applied in a single
// step and folds values below -180 with 360-|sep|; this matches the
// established sign convention for bodies east of the reference point.
func FootpointSeparation(a, b float64) float64 {
	sep := a - b
	if sep > 180 {
		sep -= 360
	}
	if sep < -180 {
		sep = 360 - math.Abs(sep)
	}
	return sep
}

// FootpointLongitude returns the Carrington longitude of a body's magnetic
// footpoint given its longitude and backmapping angle, wrapped into [0, 360).
func FootpointLongitude(lonDeg, alphaDeg float64) float64 {
	return normalizeAngle360(lonDeg + alphaDeg)
}
