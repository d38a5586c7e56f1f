// Package render draws the polar constellation chart: body markers,
// Parker-spiral field lines, the reference-longitude arrow, and the
// Earth-centered secondary axis.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/litescript/ls-heliomap/internal/astro"
	"github.com/litescript/ls-heliomap/internal/config"
	"github.com/litescript/ls-heliomap/internal/constellation"
)

// Flags select the optional chart layers.
type Flags struct {
	Spirals           bool    // draw Parker spirals connecting bodies to the Sun
	SunBodyLines      bool    // draw straight dashed Sun-body lines
	EarthCenteredAxis bool    // overlay longitude ticks with Earth at zero
	ReferenceVsw      float64 // wind speed for the reference-longitude spiral, km/s
}

// DefaultFlags mirrors the conventional chart: spirals and the
// Earth-centered axis on, straight lines off.
func DefaultFlags() Flags {
	return Flags{
		Spirals:           true,
		SunBodyLines:      false,
		EarthCenteredAxis: true,
		ReferenceVsw:      constellation.DefaultVsw,
	}
}

// Report is the rendered output: the chart as PNG bytes and base64, plus
// the coordinate table. The renderer performs no file writes.
type Report struct {
	PNG    []byte
	Base64 string
	Table  []constellation.Row
}

// Spiral sample grid and axis calibration constants.
const (
	spiralRMin  = 0.007 // AU, innermost spiral sample
	spiralRStep = 0.001 // AU, radial sample resolution
	rMinAxis    = 0.01  // AU, inner radial limit
	rPadAxis    = 0.3   // AU, padding beyond the outermost body
	marginPx    = 90.0  // figure margin around the polar axes
)

// chart carries the shared projection for one rendering pass.
type chart struct {
	dc       *gg.Context
	cx, cy   float64
	pxPerAU  float64
	offset   float64 // degrees added to Carrington longitudes
	rMaxAU   float64 // outer radial limit (maxDist + rPadAxis)
	maxDist  float64
	earthLon float64
}

// Polar renders the constellation onto a polar chart with the Sun at the
// origin and Earth rotated to the bottom of the circle.
func Polar(c *constellation.Constellation, flags Flags, style config.Style) (*Report, error) {
	if len(c.Entries) == 0 {
		return nil, fmt.Errorf("render: constellation has no entries")
	}
	if flags.ReferenceVsw <= 0 {
		flags.ReferenceVsw = constellation.DefaultVsw
	}

	dc := gg.NewContext(style.WidthPx, style.HeightPx)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetHexColor(style.Background)
	dc.Clear()

	half := math.Min(float64(style.WidthPx), float64(style.HeightPx))/2 - marginPx
	ch := &chart{
		dc:       dc,
		cx:       float64(style.WidthPx) / 2,
		cy:       float64(style.HeightPx) / 2,
		rMaxAU:   c.MaxDist + rPadAxis,
		maxDist:  c.MaxDist,
		earthLon: c.Earth.LonDeg,
		offset:   270 - c.Earth.LonDeg,
	}
	ch.pxPerAU = half / ch.rMaxAU

	ch.drawGrid(style)

	for _, e := range c.Entries {
		if flags.SunBodyLines {
			ch.drawSunBodyLine(e, style)
		}
		if flags.Spirals {
			ch.drawSpiral(e, style)
		}
		ch.drawMarker(e, style)
	}

	if c.RefLon != nil {
		ch.drawReference(*c.RefLon, flags, style)
	}

	ch.drawBoundary(style)

	if flags.EarthCenteredAxis {
		ch.drawEarthAxis(style)
	}

	ch.drawTitle(c, style)
	ch.drawLegend(c, flags, style)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}

	return &Report{
		PNG:    buf.Bytes(),
		Base64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Table:  c.Table(),
	}, nil
}

// xy projects a (Carrington longitude, radius) pair to canvas coordinates.
// Longitudes increase counter-clockwise; Earth sits at the bottom.
func (ch *chart) xy(lonDeg, rAU float64) (float64, float64) {
	ang := (lonDeg + ch.offset) * math.Pi / 180
	px := rAU * ch.pxPerAU
	return ch.cx + px*math.Cos(ang), ch.cy - px*math.Sin(ang)
}

// radialTicks returns the grid circle radii for the distance regime.
func radialTicks(maxDist float64) []float64 {
	outer := maxDist + 0.29
	var step float64
	switch {
	case maxDist < 2:
		step = 0.5
	case maxDist < 10:
		step = 1.0
	default:
		step = defaultTickStep(outer)
	}

	var ticks []float64
	for r := step; r < outer; r += step {
		ticks = append(ticks, r)
	}
	return ticks
}

// defaultTickStep picks a round step yielding at most four grid circles.
func defaultTickStep(outer float64) float64 {
	for _, s := range []float64{1, 2, 5, 10, 20, 50} {
		if outer/s <= 4 {
			return s
		}
	}
	return 100
}

func (ch *chart) drawGrid(style config.Style) {
	dc := ch.dc

	// Radial grid circles with distance labels at 22.5 degrees.
	dc.SetLineWidth(style.GridWidth)
	for _, r := range radialTicks(ch.maxDist) {
		dc.SetHexColor(style.GridColor)
		dc.DrawCircle(ch.cx, ch.cy, r*ch.pxPerAU)
		dc.Stroke()

		lx, ly := ch.xy(22.5, r)
		dc.SetHexColor(style.AxisColor)
		dc.DrawStringAnchored(trimFloat(r)+" AU", lx, ly, 0.5, 1.4)
	}

	// Angular spokes every 45 degrees of Carrington longitude.
	for k := 0; k < 8; k++ {
		lon := float64(k) * 45
		x0, y0 := ch.xy(lon, rMinAxis)
		x1, y1 := ch.xy(lon, ch.rMaxAU)
		dc.SetHexColor(style.GridColor)
		dc.SetLineWidth(style.GridWidth)
		dc.DrawLine(x0, y0, x1, y1)
		dc.Stroke()

		lx, ly := ch.xy(lon, ch.rMaxAU*1.06)
		dc.SetHexColor(style.AxisColor)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f°", lon), lx, ly, 0.5, 0.5)
	}
}

func (ch *chart) drawMarker(e constellation.Entry, style config.Style) {
	dc := ch.dc
	x, y := ch.xy(e.Pos.LonDeg, e.Pos.DistAU)
	s := style.MarkerSize
	dc.SetHexColor(e.Body.Color)
	dc.DrawRectangle(x-s/2, y-s/2, s, s)
	dc.Fill()
}

func (ch *chart) drawSunBodyLine(e constellation.Entry, style config.Style) {
	dc := ch.dc
	x0, y0 := ch.xy(e.Pos.LonDeg, rMinAxis)
	x1, y1 := ch.xy(e.Pos.LonDeg, e.Pos.DistAU)
	dc.SetHexColor(e.Body.Color)
	dc.SetLineWidth(style.SpiralWidth)
	dc.SetDash(2, 4)
	dc.DrawLine(x0, y0, x1, y1)
	dc.Stroke()
	dc.SetDash()
}

// drawSpiral traces the Parker spiral backward from the body to the Sun
// under the body's own assumed wind speed: the spiral angle at radius r is
// lon + omega/(vsw/AU) * (dist - r).
func (ch *chart) drawSpiral(e constellation.Entry, style config.Style) {
	dc := ch.dc
	omegaPerAU := astro.Omega / (e.Vsw / astro.AU) // rad per AU of wind travel

	dc.SetHexColor(e.Body.Color)
	dc.SetLineWidth(style.SpiralWidth)
	first := true
	for r := spiralRMin; r < ch.rMaxAU; r += spiralRStep {
		lon := e.Pos.LonDeg + (omegaPerAU*(e.Pos.DistAU-r))*180/math.Pi
		x, y := ch.xy(lon, r)
		if first {
			dc.MoveTo(x, y)
			first = false
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()
}

// drawReference draws the reference-longitude arrow rooted at the Sun and,
// when spirals are enabled, the dashed field line for the reference wind
// speed.
func (ch *chart) drawReference(refLon float64, flags Flags, style config.Style) {
	dc := ch.dc

	deltaRef := refLon
	if deltaRef < 0 {
		deltaRef += 360
	}
	omegaPerAU := astro.Omega / (flags.ReferenceVsw / astro.AU)

	// Spiral rooted at the reference longitude on the solar surface,
	// traced outward.
	refAngle := func(r float64) float64 {
		return deltaRef - omegaPerAU*r*180/math.Pi
	}

	if flags.Spirals {
		dc.SetHexColor(style.AxisColor)
		dc.SetLineWidth(style.SpiralWidth)
		dc.SetDash(6, 5)
		first := true
		for r := spiralRMin; r < ch.rMaxAU; r += spiralRStep {
			x, y := ch.xy(refAngle(r), r)
			if first {
				dc.MoveTo(x, y)
				first = false
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
		dc.SetDash()
	}

	// Radial arrow at the spiral root, length capped at 2 AU.
	arrowLen := math.Min(ch.maxDist/3.2, 2.0)
	rootLon := refAngle(spiralRMin)
	x0, y0 := ch.xy(rootLon, rMinAxis)
	x1, y1 := ch.xy(rootLon, rMinAxis+arrowLen)

	dc.SetHexColor(style.AxisColor)
	dc.SetLineWidth(style.ArrowWidth)
	dc.DrawLine(x0, y0, x1, y1)
	dc.Stroke()

	// Arrowhead as a filled triangle.
	dx, dy := x1-x0, y1-y0
	norm := math.Hypot(dx, dy)
	if norm > 0 {
		ux, uy := dx/norm, dy/norm
		headLen := 0.07 * ch.pxPerAU
		headWidth := 0.1 * ch.pxPerAU
		bx, by := x1-ux*headLen, y1-uy*headLen
		dc.MoveTo(x1, y1)
		dc.LineTo(bx-uy*headWidth/2, by+ux*headWidth/2)
		dc.LineTo(bx+uy*headWidth/2, by-ux*headWidth/2)
		dc.ClosePath()
		dc.Fill()
	}
}

func (ch *chart) drawBoundary(style config.Style) {
	dc := ch.dc
	dc.SetHexColor(style.AxisColor)
	dc.SetLineWidth(style.BoundaryWidth)
	dc.DrawCircle(ch.cx, ch.cy, (ch.maxDist+0.29)*ch.pxPerAU)
	dc.Stroke()
}

// drawEarthAxis overlays a second ring of longitude labels with zero at
// Earth's direction, sharing the chart origin.
func (ch *chart) drawEarthAxis(style config.Style) {
	dc := ch.dc
	dc.SetHexColor(style.EarthAxisColor)
	for k := 0; k < 8; k++ {
		rel := float64(k) * 45
		lx, ly := ch.xy(ch.earthLon+rel, ch.rMaxAU*1.13)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f°", rel), lx, ly, 0.5, 0.5)
	}
}

func (ch *chart) drawTitle(c *constellation.Constellation, style config.Style) {
	dc := ch.dc
	dc.SetHexColor(style.AxisColor)
	title := fmt.Sprintf("At %s UTC", c.Date.UTC().Format("2006-01-02 15:04"))
	dc.DrawStringAnchored(title, ch.cx, marginPx/3, 0.5, 0.5)
}

func (ch *chart) drawLegend(c *constellation.Constellation, flags Flags, style config.Style) {
	dc := ch.dc
	x := ch.cx + ch.rMaxAU*ch.pxPerAU + 30
	y := marginPx
	lineH := 18.0

	for _, e := range c.Entries {
		dc.SetHexColor(e.Body.Color)
		dc.DrawRectangle(x, y-4, 8, 8)
		dc.Fill()
		dc.SetHexColor(style.AxisColor)
		dc.DrawStringAnchored(e.Body.Name, x+14, y, 0, 0.4)
		y += lineH
	}

	if c.RefLon != nil {
		dc.SetHexColor(style.AxisColor)
		dc.DrawLine(x, y, x+10, y)
		dc.Stroke()
		dc.DrawStringAnchored("reference long.", x+14, y, 0, 0.4)
		y += lineH
		if flags.Spirals {
			label := fmt.Sprintf("field line to ref. long. (vsw=%.0f km/s)", flags.ReferenceVsw)
			dc.DrawStringAnchored(label, x+14, y, 0, 0.4)
		}
	}
}

// trimFloat formats a tick value without trailing zeros.
func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
