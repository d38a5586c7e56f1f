// Package catalog maps body names to ephemeris identifiers and display
// attributes.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-heliomap/internal/ephem"
)

// Body identifies a solar-system object or spacecraft for lookup and display.
type Body struct {
	ID    ephem.TargetID `yaml:"id"`
	Name  string         `yaml:"name"`
	Color string         `yaml:"color"` // #rrggbb hex
}

// ErrUnknownBody indicates a name with no catalog entry.
var ErrUnknownBody = errors.New("unknown body")

// defaultColor is used for bodies resolved by raw NAIF ID.
const defaultColor = "#555555"

// bodies is the canonical list of supported bodies. Colors follow the
// conventional per-mission palette used in heliophysics constellation plots.
var bodies = []Body{
	{ID: 199, Name: "Mercury", Color: "#00ced1"},
	{ID: 299, Name: "Venus", Color: "#9932cc"},
	{ID: 399, Name: "Earth", Color: "#008000"},
	{ID: 499, Name: "Mars", Color: "#800000"},
	{ID: 599, Name: "Jupiter", Color: "#000080"},
	{ID: 699, Name: "Saturn", Color: "#daa520"},
	{ID: 799, Name: "Uranus", Color: "#20b2aa"},
	{ID: 899, Name: "Neptune", Color: "#4682b4"},

	{ID: -96, Name: "Parker Solar Probe", Color: "#800080"},
	{ID: -144, Name: "Solar Orbiter", Color: "#1e90ff"},
	{ID: -234, Name: "STEREO-A", Color: "#ff0000"},
	{ID: -235, Name: "STEREO-B", Color: "#0000ff"},
	{ID: -21, Name: "SOHO", Color: "#006400"},
	{ID: -121, Name: "BepiColombo", Color: "#ffa500"},
	{ID: -92, Name: "ACE", Color: "#696969"},
	{ID: -8, Name: "WIND", Color: "#6a5acd"},
	{ID: -146, Name: "DSCOVR", Color: "#008080"},
	{ID: -202, Name: "MAVEN", Color: "#a52a2a"},
	{ID: -61, Name: "Juno", Color: "#b8860b"},
	{ID: -28, Name: "JUICE", Color: "#808000"},
	{ID: -98, Name: "New Horizons", Color: "#2f4f4f"},
	{ID: -31, Name: "Voyager 1", Color: "#708090"},
	{ID: -32, Name: "Voyager 2", Color: "#778899"},
}

// aliases maps common alternative names to canonical names.
var aliases = map[string]string{
	"psp":           "Parker Solar Probe",
	"parker":        "Parker Solar Probe",
	"solo":          "Solar Orbiter",
	"sta":           "STEREO-A",
	"stereo a":      "STEREO-A",
	"stereo ahead":  "STEREO-A",
	"stb":           "STEREO-B",
	"stereo b":      "STEREO-B",
	"stereo behind": "STEREO-B",
	"bepi":          "BepiColombo",
	"bepi colombo":  "BepiColombo",
	"dscovr":        "DSCOVR",
	"l1":            "ACE",
	"vgr1":          "Voyager 1",
	"vgr2":          "Voyager 2",
	"nh":            "New Horizons",
}

// Catalog resolves body names to identifiers and display attributes.
type Catalog struct {
	byName map[string]Body
}

// Default returns a catalog populated with the canonical body list.
func Default() *Catalog {
	c := &Catalog{byName: make(map[string]Body, len(bodies)*2)}
	for _, b := range bodies {
		c.byName[normalizeName(b.Name)] = b
	}
	for alias, canonical := range aliases {
		if b, ok := c.byName[normalizeName(canonical)]; ok {
			c.byName[alias] = b
		}
	}
	return c
}

// Get resolves a body name or numeric NAIF ID string to a catalog entry.
// Returns an error wrapping ErrUnknownBody for names it cannot resolve.
func (c *Catalog) Get(name string) (Body, error) {
	if b, ok := c.byName[normalizeName(name)]; ok {
		return b, nil
	}

	// Numeric catalogue IDs pass through as raw NAIF IDs.
	if id, err := strconv.Atoi(strings.TrimSpace(name)); err == nil {
		return Body{ID: ephem.TargetID(id), Name: name, Color: defaultColor}, nil
	}

	return Body{}, fmt.Errorf("%w: %q", ErrUnknownBody, name)
}

// overlayFile is the on-disk format for user-defined catalog entries.
type overlayFile struct {
	Bodies []Body `yaml:"bodies"`
}

// LoadOverlay merges user-defined bodies from a YAML file into the catalog.
// Entries with a known name override the canonical definition.
func (c *Catalog) LoadOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog overlay: %w", err)
	}
	return c.MergeYAML(data)
}

// MergeYAML merges YAML-encoded catalog entries.
func (c *Catalog) MergeYAML(data []byte) error {
	var of overlayFile
	if err := yaml.Unmarshal(data, &of); err != nil {
		return fmt.Errorf("parse catalog overlay: %w", err)
	}
	for _, b := range of.Bodies {
		if b.Name == "" {
			return fmt.Errorf("catalog overlay entry missing name")
		}
		if b.Color == "" {
			b.Color = defaultColor
		}
		c.byName[normalizeName(b.Name)] = b
	}
	return nil
}

// normalizeName lowercases a body name for matching.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
