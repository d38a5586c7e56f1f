package constellation

import "math"

// Row is one line of the coordinate table.
type Row struct {
	Body    string
	LonDeg  float64 // rounded to whole degrees
	LatDeg  float64 // rounded to whole degrees
	DistAU  float64 // rounded to 2 decimals
	LonSepE float64 // longitudinal separation to Earth, whole degrees
	LatSepE float64 // latitudinal separation to Earth, whole degrees

	// Unrounded extras for downstream consumers.
	Vsw          float64
	FootpointLon float64
}

// Table returns the coordinate summary, one row per resolved body in
// input order.
func (c *Constellation) Table() []Row {
	rows := make([]Row, 0, len(c.Entries))
	for _, e := range c.Entries {
		rows = append(rows, Row{
			Body:         e.Body.Name,
			LonDeg:       math.Round(e.Pos.LonDeg),
			LatDeg:       math.Round(e.Pos.LatDeg),
			DistAU:       math.Round(e.Pos.DistAU*100) / 100,
			LonSepE:      math.Round(e.LonSepEarth),
			LatSepE:      math.Round(e.LatSepEarth),
			Vsw:          e.Vsw,
			FootpointLon: e.FootpointLon,
		})
	}
	return rows
}
