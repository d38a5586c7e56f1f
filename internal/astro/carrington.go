package astro

import (
	"math"
	"time"
)

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Solar rotation axis elements relative to the ecliptic.
// Inclination is effectively constant; the node precesses slowly.
const (
	solarInclinationDeg = 7.25

	// Node longitude reference epoch (JD) and rate.
	nodeEpochJD   = 2396758.0
	nodeLonDeg0   = 73.6667
	nodeRateDeg   = 0.013958 // degrees per Julian year
	julianYearDay = 365.25

	// Carrington prime meridian epoch: JD at which longitude zero
	// coincided with the ascending node (1853-11-09, rotation 1).
	carringtonEpochJD = 2398220.0
)

// EclipticToCarrington converts a heliocentric ecliptic position vector
// (AU, J2000 ecliptic plane) at time t into Carrington heliographic
// coordinates: longitude in [0, 360) degrees, latitude in degrees, and
// radial distance in AU.
func EclipticToCarrington(v Vec3, t time.Time) (lonDeg, latDeg, distAU float64) {
	r := v.Norm()
	if r == 0 {
		return 0, 0, 0
	}

	jd := julianDate(t)

	// Longitude of the ascending node of the solar equator on the ecliptic.
	node := nodeLonDeg0 + nodeRateDeg*(jd-nodeEpochJD)/julianYearDay
	nodeRad := degToRad(node)
	incRad := degToRad(solarInclinationDeg)

	// Rotate about the ecliptic pole so X points at the ascending node.
	x1 := v.X*math.Cos(nodeRad) + v.Y*math.Sin(nodeRad)
	y1 := -v.X*math.Sin(nodeRad) + v.Y*math.Cos(nodeRad)
	z1 := v.Z

	// Rotate about the node axis by the solar inclination into the
	// solar equatorial plane.
	x2 := x1
	y2 := y1*math.Cos(incRad) + z1*math.Sin(incRad)
	z2 := -y1*math.Sin(incRad) + z1*math.Cos(incRad)

	latDeg = radToDeg(math.Asin(z2 / r))

	// Angle of the body from the ascending node along the solar equator.
	theta := radToDeg(math.Atan2(y2, x2))

	// Angle of the Carrington prime meridian from the node: the meridian
	// rotates uniformly with the sidereal period from the 1853 epoch.
	w := 360.0 * (jd - carringtonEpochJD) / SiderealRotationDays

	lonDeg = normalizeAngle360(theta - w)
	distAU = r
	return lonDeg, latDeg, distAU
}
