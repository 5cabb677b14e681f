package domain

// Shop is a candidate store produced by a discovery fetch. Instances are
// rebuilt on every fetch; only the ID is stable across fetches.
type Shop struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Location   string          `json:"location"`
	PostalCode string          `json:"pincode"`
	Geofence   GeofencePolygon `json:"geofence"`
	// Inside records whether the last-known customer coordinate fell
	// inside the geofence. Recomputed on every coordinate change.
	Inside bool `json:"inside"`
}

// RepresentativePoint is the stand-in location used for distance
// filtering and routing: the first geofence vertex.
func (s Shop) RepresentativePoint() (Coordinate, bool) {
	if len(s.Geofence) == 0 {
		return Coordinate{}, false
	}
	return s.Geofence[0], true
}
