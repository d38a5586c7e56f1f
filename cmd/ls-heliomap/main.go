// Command ls-heliomap renders the heliospheric constellation for a date:
// body positions in the Carrington frame, their Parker-spiral field lines,
// and a coordinate table.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/joho/godotenv"

	"github.com/litescript/ls-heliomap/internal/catalog"
	"github.com/litescript/ls-heliomap/internal/config"
	"github.com/litescript/ls-heliomap/internal/constellation"
	"github.com/litescript/ls-heliomap/internal/ephem"
	"github.com/litescript/ls-heliomap/internal/logging"
	"github.com/litescript/ls-heliomap/internal/render"
	"github.com/litescript/ls-heliomap/internal/version"
)

// dateLayouts are the accepted -date formats, all interpreted as UTC.
var dateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02",
}

func main() {
	// .env is optional; flags still win over the environment.
	_ = godotenv.Load()

	dateStr := flag.String("date", "", "Observation date, UTC (e.g. '2021-04-01 12:00'; default now)")
	bodiesStr := flag.String("bodies", "Earth,PSP,Solar Orbiter,STEREO-A,BepiColombo", "Comma-separated body names or NAIF IDs")
	vswStr := flag.String("vsw", "", "Comma-separated solar wind speeds in km/s, parallel to -bodies")
	refLonStr := flag.String("ref-long", "", "Reference Carrington longitude in degrees")
	refLatStr := flag.String("ref-lat", "", "Reference heliographic latitude in degrees")
	spirals := flag.Bool("spirals", true, "Draw Parker-spiral field lines")
	sunBodyLines := flag.Bool("sun-body-lines", false, "Draw straight Sun-body lines")
	earthAxis := flag.Bool("earth-axis", true, "Overlay Earth-centered longitude axis")
	refVsw := flag.Float64("ref-vsw", constellation.DefaultVsw, "Wind speed for the reference-longitude spiral, km/s")
	outPath := flag.String("out", "constellation.png", "Output PNG path (use - to skip the file)")
	catalogPath := flag.String("catalog", os.Getenv("HELIOMAP_CATALOG"), "YAML catalog overlay file")
	stylePath := flag.String("style", os.Getenv("HELIOMAP_STYLE"), "YAML chart style file")
	timeout := flag.Duration("timeout", 60*time.Second, "Overall ephemeris lookup deadline")
	logLevel := flag.String("log-level", envOr("HELIOMAP_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", os.Getenv("HELIOMAP_LOG_FILE"), "Optional rotated log file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("ls-heliomap " + version.Version)
		return
	}

	logger := logging.New(*logLevel)
	if *logFile != "" {
		logging.WithFile(logger, *logFile)
	}

	date := time.Now().UTC().Truncate(time.Minute)
	if *dateStr != "" {
		parsed, err := parseDate(*dateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		date = parsed
	}

	vsw, err := parseFloats(*vswStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -vsw: %v\n", err)
		os.Exit(2)
	}

	opts := constellation.Options{
		Date:   date,
		Bodies: splitList(*bodiesStr),
		Vsw:    vsw,
	}
	if opts.RefLon, err = parseOptionalFloat(*refLonStr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -ref-long: %v\n", err)
		os.Exit(2)
	}
	if opts.RefLat, err = parseOptionalFloat(*refLatStr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -ref-lat: %v\n", err)
		os.Exit(2)
	}

	cat := catalog.Default()
	if *catalogPath != "" {
		if err := cat.LoadOverlay(*catalogPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	}

	style := config.DefaultStyle()
	if *stylePath != "" {
		if style, err = config.LoadStyle(*stylePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	provider := ephem.NewHorizonsProvider()
	logger.Debugf("resolving %d bodies at %s via %s", len(opts.Bodies), date, provider.Name())

	c, err := constellation.Build(ctx, provider, cat, opts, logger)
	if err != nil {
		code := 1
		if errors.Is(err, constellation.ErrInvalidParameter) {
			code = 2
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(code)
	}

	flags := render.Flags{
		Spirals:           *spirals,
		SunBodyLines:      *sunBodyLines,
		EarthCenteredAxis: *earthAxis,
		ReferenceVsw:      *refVsw,
	}

	report, err := render.Polar(c, flags, style)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printTable(report)

	if *outPath != "-" {
		if err := os.WriteFile(*outPath, report.PNG, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: write chart: %v\n", err)
			os.Exit(1)
		}
		logger.Infof("wrote %s (%d bodies, max distance %.2f AU)", *outPath, len(c.Entries), c.MaxDist)
	}

	for _, name := range c.Skipped {
		logger.Warnf("excluded %q: no ephemeris for %s", name, date.Format("2006-01-02 15:04"))
	}
}

// printTable renders the coordinate table to stdout.
func printTable(report *render.Report) {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Body", "Lon (°)", "Lat (°)", "Dist (AU)", "Δlon Earth (°)", "Δlat Earth (°)")

	for _, r := range report.Table {
		t.Row(
			r.Body,
			fmt.Sprintf("%.0f", r.LonDeg),
			fmt.Sprintf("%.0f", r.LatDeg),
			fmt.Sprintf("%.2f", r.DistAU),
			fmt.Sprintf("%.0f", r.LonSepE),
			fmt.Sprintf("%.0f", r.LatSepE),
		)
	}

	fmt.Println(t)
}

// parseDate tries the accepted layouts in order.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range splitList(s) {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseOptionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
