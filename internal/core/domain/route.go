package domain

// NotAvailable is the display sentinel used when the directions provider
// could not supply a distance or duration.
const NotAvailable = "N/A"

// RouteSummary is a provider-computed path with human-readable travel
// estimates. DistanceText and DurationText are provider-formatted and
// must be treated as opaque display strings.
type RouteSummary struct {
	DistanceText string       `json:"distance_text"`
	DurationText string       `json:"duration_text"`
	StartAddress string       `json:"start_address"`
	EndAddress   string       `json:"end_address"`
	Polyline     []Coordinate `json:"polyline"`
}

// Fallback reports whether this summary is the straight-line stand-in
// produced after a provider failure.
func (r RouteSummary) Fallback() bool {
	return r.DistanceText == NotAvailable
}

// FallbackRoute builds the straight two-point stand-in used when the
// directions provider fails. Callers render it instead of surfacing the
// provider error.
func FallbackRoute(from, to Coordinate) RouteSummary {
	return RouteSummary{
		DistanceText: NotAvailable,
		DurationText: NotAvailable,
		Polyline:     []Coordinate{from, to},
	}
}
