// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Earth-centered secondary axis, catalog overlay files, style config
// 0.2.0 - Parker-spiral rendering, reference-longitude arrow, PNG report
// 0.1.0 - Initial release: Horizons Carrington lookups, backmapping, coordinate table
