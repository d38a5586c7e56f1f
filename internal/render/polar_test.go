package render

import (
	"bytes"
	"encoding/base64"
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-heliomap/internal/catalog"
	"github.com/litescript/ls-heliomap/internal/config"
	"github.com/litescript/ls-heliomap/internal/constellation"
	"github.com/litescript/ls-heliomap/internal/ephem"
)

func TestRadialTicks(t *testing.T) {
	tests := []struct {
		name    string
		maxDist float64
		want    []float64
	}{
		{"inner regime", 1.5, []float64{0.5, 1.0, 1.5}},
		{"mid regime", 5, []float64{1, 2, 3, 4, 5}},
		{"outer regime", 15, []float64{5, 10, 15}},
		{"boundary below 2", 1.999, []float64{0.5, 1.0, 1.5, 2.0}},
		{"boundary at 2", 2, []float64{1, 2}},
		{"boundary at 10", 10, []float64{5, 10}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := radialTicks(tc.maxDist)
			if len(got) != len(tc.want) {
				t.Fatalf("radialTicks(%v) = %v, want %v", tc.maxDist, got, tc.want)
			}
			for i := range got {
				if math.Abs(got[i]-tc.want[i]) > 1e-9 {
					t.Errorf("tick %d = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func testConstellation() *constellation.Constellation {
	refLon := 20.0
	return &constellation.Constellation{
		Date:  time.Date(2021, 4, 1, 12, 0, 0, 0, time.UTC),
		Earth: ephem.Position{LonDeg: 100, LatDeg: 0, DistAU: 1.0},
		Entries: []constellation.Entry{
			{
				Body:         catalog.Body{ID: 499, Name: "Mars", Color: "#800000"},
				Pos:          ephem.Position{LonDeg: 130, LatDeg: 5, DistAU: 1.52},
				Vsw:          400,
				LonSepEarth:  30,
				LatSepEarth:  5,
				Alpha:        93.3,
				FootpointLon: 223.3,
			},
			{
				Body:         catalog.Body{ID: -96, Name: "Parker Solar Probe", Color: "#800080"},
				Pos:          ephem.Position{LonDeg: 310, LatDeg: -2, DistAU: 0.25},
				Vsw:          350,
				LonSepEarth:  -150,
				LatSepEarth:  -2,
				Alpha:        17.5,
				FootpointLon: 327.5,
			},
		},
		MaxDist: 1.52,
		RefLon:  &refLon,
	}
}

func TestPolar(t *testing.T) {
	report, err := Polar(testConstellation(), DefaultFlags(), config.DefaultStyle())
	if err != nil {
		t.Fatalf("Polar failed: %v", err)
	}

	if len(report.PNG) == 0 {
		t.Fatal("empty PNG output")
	}
	if !bytes.HasPrefix(report.PNG, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output is not a PNG")
	}

	decoded, err := base64.StdEncoding.DecodeString(report.Base64)
	if err != nil {
		t.Fatalf("Base64 does not decode: %v", err)
	}
	if !bytes.Equal(decoded, report.PNG) {
		t.Error("Base64 does not round-trip to the PNG bytes")
	}

	if len(report.Table) != 2 {
		t.Errorf("table has %d rows, want 2", len(report.Table))
	}
	if report.Table[0].Body != "Mars" {
		t.Errorf("first row = %q, want Mars", report.Table[0].Body)
	}
}

func TestPolarAllLayers(t *testing.T) {
	flags := Flags{
		Spirals:           true,
		SunBodyLines:      true,
		EarthCenteredAxis: true,
		ReferenceVsw:      500,
	}
	if _, err := Polar(testConstellation(), flags, config.DefaultStyle()); err != nil {
		t.Fatalf("Polar with all layers failed: %v", err)
	}

	// Minimal chart: everything optional off, no reference.
	c := testConstellation()
	c.RefLon = nil
	if _, err := Polar(c, Flags{}, config.DefaultStyle()); err != nil {
		t.Fatalf("Polar with no layers failed: %v", err)
	}
}

func TestPolarEmptyConstellation(t *testing.T) {
	c := &constellation.Constellation{Date: time.Now()}
	if _, err := Polar(c, DefaultFlags(), config.DefaultStyle()); err == nil {
		t.Error("expected error for empty constellation")
	}
}

func TestChartProjection(t *testing.T) {
	ch := &chart{
		cx: 600, cy: 400,
		pxPerAU:  100,
		offset:   270 - 100, // Earth at longitude 100
		rMaxAU:   2,
		maxDist:  1.7,
		earthLon: 100,
	}

	// Earth's longitude lands at the bottom of the circle.
	x, y := ch.xy(100, 1.0)
	if math.Abs(x-600) > 1e-9 {
		t.Errorf("Earth x = %v, want 600", x)
	}
	if math.Abs(y-500) > 1e-9 {
		t.Errorf("Earth y = %v, want 500 (below center)", y)
	}

	// 90 degrees east of Earth lands on the right (counter-clockwise).
	x, y = ch.xy(190, 1.0)
	if math.Abs(x-700) > 1e-9 || math.Abs(y-400) > 1e-9 {
		t.Errorf("east point = (%v, %v), want (700, 400)", x, y)
	}
}
