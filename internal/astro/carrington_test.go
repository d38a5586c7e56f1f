package astro

import (
	"math"
	"testing"
	"time"
)

func TestEclipticToCarringtonInvariants(t *testing.T) {
	when := time.Date(2021, 4, 1, 12, 0, 0, 0, time.UTC)

	vectors := []Vec3{
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 0.72, Z: 0},
		{X: -0.4, Y: 0.3, Z: 0.01},
		{X: 2.5, Y: -4.1, Z: 0.2},
	}

	for _, v := range vectors {
		lon, lat, dist := EclipticToCarrington(v, when)

		if lon < 0 || lon >= 360 {
			t.Errorf("longitude %v out of [0, 360) for %+v", lon, v)
		}
		if math.Abs(dist-v.Norm()) > 1e-12 {
			t.Errorf("distance %v, want %v", dist, v.Norm())
		}
		// A vector in the ecliptic plane can sit at most the solar
		// equator's inclination away from the solar equator.
		if v.Z == 0 && math.Abs(lat) > solarInclinationDeg+1e-9 {
			t.Errorf("latitude %v exceeds inclination for in-plane vector %+v", lat, v)
		}
	}
}

func TestEclipticToCarringtonRotation(t *testing.T) {
	// A fixed inertial direction drifts by one full rotation per sidereal
	// period, so its Carrington longitude repeats.
	v := Vec3{X: 0.3, Y: 0.9, Z: 0.02}
	t0 := time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Duration(SiderealRotationDays * 24 * float64(time.Hour)))

	lon0, lat0, _ := EclipticToCarrington(v, t0)
	lon1, lat1, _ := EclipticToCarrington(v, t1)

	if d := math.Abs(AngularSeparation(lon0, lon1)); d > 0.05 {
		t.Errorf("longitude did not repeat after one sidereal period: %v vs %v (delta %v)", lon0, lon1, d)
	}
	if math.Abs(lat0-lat1) > 0.05 {
		t.Errorf("latitude drifted over one rotation: %v vs %v", lat0, lat1)
	}
}

func TestEclipticToCarringtonZeroVector(t *testing.T) {
	lon, lat, dist := EclipticToCarrington(Vec3{}, time.Now())
	if lon != 0 || lat != 0 || dist != 0 {
		t.Errorf("zero vector gave (%v, %v, %v), want zeros", lon, lat, dist)
	}
}

func TestJulianDate(t *testing.T) {
	// J2000.0 epoch: 2000-01-01 12:00 UTC = JD 2451545.0
	jd := julianDate(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(jd-2451545.0) > 1e-6 {
		t.Errorf("julianDate(J2000) = %v, want 2451545.0", jd)
	}
}
