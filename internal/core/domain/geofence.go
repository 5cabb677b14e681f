package domain

import "encoding/json"

// GeofencePolygon is the ordered boundary of a shop's catchment area.
// Fewer than 3 vertices means the polygon contains nothing.
type GeofencePolygon []Coordinate

// Empty reports whether the polygon has no vertices.
func (p GeofencePolygon) Empty() bool { return len(p) == 0 }

// geofenceVertex is the {"lat":..,"lng":..} payload variant.
type geofenceVertex struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParseGeofence parses the untrusted geofence payload attached to a shop
// record. Two shapes are accepted: a list of {lat,lng} objects, or a list
// of [lng,lat] pairs. Anything else — including invalid JSON and an empty
// list — degrades to an empty polygon instead of an error, so one bad
// record never breaks a discovery pass.
func ParseGeofence(payload []byte) GeofencePolygon {
	var vertices []geofenceVertex
	if err := json.Unmarshal(payload, &vertices); err == nil {
		if len(vertices) == 0 {
			return nil
		}
		poly := make(GeofencePolygon, len(vertices))
		for i, v := range vertices {
			poly[i] = Coordinate{Lat: v.Lat, Lng: v.Lng}
		}
		return poly
	}

	// Pair variant stores points as [lng,lat], GeoJSON-style.
	var pairs [][]float64
	if err := json.Unmarshal(payload, &pairs); err == nil {
		if len(pairs) == 0 {
			return nil
		}
		poly := make(GeofencePolygon, 0, len(pairs))
		for _, pair := range pairs {
			if len(pair) < 2 {
				return nil
			}
			poly = append(poly, Coordinate{Lat: pair[1], Lng: pair[0]})
		}
		return poly
	}

	return nil
}
