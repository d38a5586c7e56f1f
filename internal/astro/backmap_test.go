package astro

import (
	"errors"
	"math"
	"testing"
)

func TestAngularSeparation(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"simple east", 130, 100, 30},
		{"simple west", 100, 130, -30},
		{"wrap across zero", 10, 350, 20},
		{"wrap across zero negative", 350, 10, -20},
		{"exactly opposite", 180, 0, 180},
		{"negative opposite folds to 180", 0, 180, 180},
		{"identical", 42, 42, 0},
		{"multi-revolution", 730, 10, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AngularSeparation(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("AngularSeparation(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestAngularSeparationRange(t *testing.T) {
	// Result must stay in (-180, 180] for arbitrary inputs, and be
	// antisymmetric up to the shared +180 boundary.
	inputs := []float64{-720.5, -359, -180, -0.001, 0, 13.7, 179.9, 180, 181, 359.9, 360, 1234.5}
	for _, a := range inputs {
		for _, b := range inputs {
			sep := AngularSeparation(a, b)
			if sep <= -180 || sep > 180 {
				t.Errorf("AngularSeparation(%v, %v) = %v out of (-180, 180]", a, b, sep)
			}
			rev := AngularSeparation(b, a)
			if sep != 180 && math.Abs(sep+rev) > 1e-9 {
				t.Errorf("antisymmetry violated: sep(%v,%v)=%v sep(%v,%v)=%v", a, b, sep, b, a, rev)
			}
		}
	}
}

func TestBackmapAlpha(t *testing.T) {
	// 1 AU at 400 km/s: travel time ~373995 s, alpha ~61.4 degrees.
	_, alpha, err := Backmap(0, 1.0, 400, nil)
	if err != nil {
		t.Fatalf("Backmap failed: %v", err)
	}
	if math.Abs(alpha-61.4) > 0.1 {
		t.Errorf("alpha = %v, want ~61.4", alpha)
	}
}

func TestBackmapNoReference(t *testing.T) {
	sep, _, err := Backmap(100, 1.0, 400, nil)
	if err != nil {
		t.Fatalf("Backmap failed: %v", err)
	}
	if !math.IsNaN(sep) {
		t.Errorf("sep without reference = %v, want NaN", sep)
	}
}

func TestBackmapDeterministic(t *testing.T) {
	ref := 60.0
	sep1, alpha1, err := Backmap(100, 0.7, 350, &ref)
	if err != nil {
		t.Fatalf("Backmap failed: %v", err)
	}
	sep2, alpha2, err := Backmap(100, 0.7, 350, &ref)
	if err != nil {
		t.Fatalf("Backmap failed: %v", err)
	}
	if sep1 != sep2 || alpha1 != alpha2 {
		t.Errorf("Backmap not deterministic: (%v,%v) vs (%v,%v)", sep1, alpha1, sep2, alpha2)
	}
}

func TestBackmapMonotonicity(t *testing.T) {
	// alpha grows with distance at fixed wind speed.
	prev := -1.0
	for _, d := range []float64{0.1, 0.3, 0.7, 1.0, 1.5, 5.0} {
		_, alpha, err := Backmap(0, d, 400, nil)
		if err != nil {
			t.Fatalf("Backmap failed: %v", err)
		}
		if alpha <= prev {
			t.Errorf("alpha not increasing with distance: %v at %v AU after %v", alpha, d, prev)
		}
		prev = alpha
	}

	// alpha shrinks with wind speed at fixed distance.
	prev = math.Inf(1)
	for _, v := range []float64{250, 400, 600, 800} {
		_, alpha, err := Backmap(0, 1.0, v, nil)
		if err != nil {
			t.Fatalf("Backmap failed: %v", err)
		}
		if alpha >= prev {
			t.Errorf("alpha not decreasing with wind speed: %v at %v km/s after %v", alpha, v, prev)
		}
		prev = alpha
	}
}

func TestBackmapInvalidWindSpeed(t *testing.T) {
	for _, v := range []float64{0, -400} {
		_, _, err := Backmap(0, 1.0, v, nil)
		if !errors.Is(err, ErrInvalidWindSpeed) {
			t.Errorf("Backmap with vsw=%v: err = %v, want ErrInvalidWindSpeed", v, err)
		}
	}
}

func TestBackmapRoundTrip(t *testing.T) {
	// Using the body's own longitude as reference recovers alpha exactly
	// as long as alpha stays below 180.
	lon := 250.0
	sep, alpha, err := Backmap(lon, 1.0, 400, &lon)
	if err != nil {
		t.Fatalf("Backmap failed: %v", err)
	}
	if alpha >= 180 {
		t.Fatalf("test premise violated: alpha = %v", alpha)
	}
	if math.Abs(sep-alpha) > 1e-9 {
		t.Errorf("sep = %v, want alpha = %v", sep, alpha)
	}
}

func TestFootpointSeparationWrap(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"no wrap", 30, 10, 20},
		{"upper wrap", 350, 10, -20},
		{"lower branch folds positive", 10, 200, 170},
		{"at lower boundary", 0, 180, -180},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FootpointSeparation(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("FootpointSeparation(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestFootpointLongitude(t *testing.T) {
	tests := []struct {
		lon, alpha float64
		want       float64
	}{
		{100, 61.4, 161.4},
		{330, 61.4, 31.4},
		{350, 380, 10},
	}

	for _, tc := range tests {
		got := FootpointLongitude(tc.lon, tc.alpha)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("FootpointLongitude(%v, %v) = %v, want %v", tc.lon, tc.alpha, got, tc.want)
		}
		if got < 0 || got >= 360 {
			t.Errorf("footpoint %v out of [0, 360)", got)
		}
	}
}
