package ephem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/litescript/ls-heliomap/internal/astro"
)

const (
	// HorizonsAPIURL is the JPL Horizons JSON API endpoint.
	HorizonsAPIURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// RequestTimeout is the HTTP request timeout ceiling. Callers can
	// impose a shorter deadline through the context.
	RequestTimeout = 30 * time.Second

	// PositionCacheTTL is how long to cache resolved positions.
	PositionCacheTTL = 10 * time.Minute
)

// HorizonsProvider queries JPL Horizons for heliocentric state vectors and
// converts them to the Carrington frame.
type HorizonsProvider struct {
	client  *http.Client
	baseURL string

	mu    sync.RWMutex
	cache map[cacheKey]*cachedPosition
}

type cacheKey struct {
	target TargetID
	minute int64 // query time truncated to the minute
}

type cachedPosition struct {
	pos       Position
	fetchedAt time.Time
}

// NewHorizonsProvider creates a new Horizons API client.
func NewHorizonsProvider() *HorizonsProvider {
	return &HorizonsProvider{
		client: &http.Client{
			Timeout: RequestTimeout,
		},
		baseURL: HorizonsAPIURL,
		cache:   make(map[cacheKey]*cachedPosition),
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (p *HorizonsProvider) SetBaseURL(u string) {
	p.baseURL = u
}

// Name implements Provider.
func (p *HorizonsProvider) Name() string {
	return "Horizons"
}

// Lookup implements Provider.
// Queries Horizons for a heliocentric ecliptic vector and converts it to
// Carrington longitude/latitude/distance.
func (p *HorizonsProvider) Lookup(ctx context.Context, target TargetID, t time.Time) (Position, error) {
	key := cacheKey{target: target, minute: t.Truncate(time.Minute).Unix()}

	p.mu.RLock()
	cached, ok := p.cache[key]
	p.mu.RUnlock()

	if ok && time.Since(cached.fetchedAt) < PositionCacheTTL {
		return cached.pos, nil
	}

	vec, err := p.queryHeliocentricVectors(ctx, target, t)
	if err != nil {
		return Position{}, err
	}

	lon, lat, dist := astro.EclipticToCarrington(vec, t)
	pos := Position{LonDeg: lon, LatDeg: lat, DistAU: dist}

	p.mu.Lock()
	p.cache[key] = &cachedPosition{pos: pos, fetchedAt: time.Now()}
	p.mu.Unlock()

	return pos, nil
}

// queryHeliocentricVectors queries Horizons for heliocentric ecliptic state vectors.
func (p *HorizonsProvider) queryHeliocentricVectors(ctx context.Context, target TargetID, t time.Time) (astro.Vec3, error) {
	// Build request parameters for VECTORS ephemeris - values must be
	// quoted with single quotes
	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%d'", target))
	params.Set("OBJ_DATA", "NO")
	params.Set("MAKE_EPHEM", "YES")
	params.Set("EPHEM_TYPE", "VECTORS")
	params.Set("CENTER", "'@10'")       // Sun center
	params.Set("REF_PLANE", "ECLIPTIC") // Ecliptic plane
	params.Set("REF_SYSTEM", "ICRF")
	params.Set("VEC_TABLE", "'2'") // Position only (no velocity)
	params.Set("VEC_LABELS", "NO")
	params.Set("OUT_UNITS", "'AU-D'") // AU and days
	params.Set("START_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(t)))
	params.Set("STOP_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(t.Add(time.Minute))))
	params.Set("STEP_SIZE", "'1 m'")

	reqURL := p.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return astro.Vec3{}, fmt.Errorf("build horizons request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return astro.Vec3{}, fmt.Errorf("horizons vector request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return astro.Vec3{}, fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return astro.Vec3{}, fmt.Errorf("failed to read response: %w", err)
	}

	return parseVectorResponse(target, body)
}

// horizonsResponse represents the JSON API response.
type horizonsResponse struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
	Error  string `json:"error"`
}

// parseVectorResponse parses the Horizons JSON response for vector data.
func parseVectorResponse(target TargetID, body []byte) (astro.Vec3, error) {
	var resp horizonsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return astro.Vec3{}, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if resp.Error != "" {
		return astro.Vec3{}, fmt.Errorf("%w %d: %s", ErrNotFound, target, resp.Error)
	}

	// Horizons reports unknown targets and uncovered date spans inside the
	// result text rather than as an HTTP error.
	if strings.Contains(resp.Result, "No matches found") ||
		strings.Contains(resp.Result, "No ephemeris for target") ||
		strings.Contains(resp.Result, "Cannot interpolate") {
		return astro.Vec3{}, fmt.Errorf("%w %d", ErrNotFound, target)
	}

	// Find the data section between $$SOE and $$EOE markers
	soeIdx := strings.Index(resp.Result, "$$SOE")
	eoeIdx := strings.Index(resp.Result, "$$EOE")
	if soeIdx == -1 || eoeIdx == -1 || soeIdx >= eoeIdx {
		return astro.Vec3{}, fmt.Errorf("%w %d: could not find vector data markers", ErrNotFound, target)
	}

	dataSection := resp.Result[soeIdx+5 : eoeIdx]
	lines := strings.Split(dataSection, "\n")

	// Vector format (VEC_TABLE='2', no labels):
	// 2460651.500000000 = A.D. 2024-Dec-05 00:00:00.0000 TDB
	//  X = 1.234567890123456E+00 Y = 2.345678901234567E+00 Z = 3.456789012345678E-01
	// OR compact format:
	// 2460651.500000000 = A.D. 2024-Dec-05 00:00:00.0000 TDB
	//  1.234567890123456E+00  2.345678901234567E+00  3.456789012345678E-01

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "=") && strings.Contains(line, "A.D.") {
			continue
		}

		// Try labeled format first: X = val Y = val Z = val
		if strings.Contains(line, "X =") {
			return parseVectorLabeled(line)
		}

		// Try unlabeled format: just three numbers
		vec, err := parseVectorUnlabeled(line)
		if err == nil {
			return vec, nil
		}
	}

	return astro.Vec3{}, fmt.Errorf("%w %d: could not parse vector data", ErrNotFound, target)
}

// parseVectorLabeled parses: X = 1.23E+00 Y = 2.34E+00 Z = 3.45E-01
func parseVectorLabeled(line string) (astro.Vec3, error) {
	parts := strings.Split(line, "=")
	if len(parts) < 4 {
		return astro.Vec3{}, fmt.Errorf("invalid labeled format")
	}

	// parts[1] contains "X_value Y", parts[2] contains "Y_value Z", parts[3] contains "Z_value"
	xStr := strings.Fields(parts[1])[0]
	yStr := strings.Fields(parts[2])[0]
	zStr := strings.TrimSpace(parts[3])

	x, err := strconv.ParseFloat(xStr, 64)
	if err != nil {
		return astro.Vec3{}, err
	}
	y, err := strconv.ParseFloat(yStr, 64)
	if err != nil {
		return astro.Vec3{}, err
	}
	z, err := strconv.ParseFloat(zStr, 64)
	if err != nil {
		return astro.Vec3{}, err
	}

	return astro.Vec3{X: x, Y: y, Z: z}, nil
}

// parseVectorUnlabeled parses: 1.23E+00  2.34E+00  3.45E-01
func parseVectorUnlabeled(line string) (astro.Vec3, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return astro.Vec3{}, fmt.Errorf("insufficient fields: %d", len(fields))
	}

	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return astro.Vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return astro.Vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return astro.Vec3{}, err
	}

	return astro.Vec3{X: x, Y: y, Z: z}, nil
}

// formatHorizonsTime formats a time for the Horizons API.
func formatHorizonsTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}
