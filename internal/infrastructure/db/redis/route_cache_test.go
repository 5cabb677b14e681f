package redis

import (
	"encoding/json"
	"testing"

	"github.com/nearshop/geocore/internal/core/domain"
)

func TestDecodeRoute_RoundTrip(t *testing.T) {
	want := domain.RouteSummary{
		DistanceText: "5.2 km",
		DurationText: "14 mins",
		StartAddress: "Start St",
		EndAddress:   "End Ave",
		Polyline: []domain.Coordinate{
			{Lat: 17.385, Lng: 78.4867},
			{Lat: 17.40, Lng: 78.50},
		},
	}
	raw, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, ok := decodeRoute(raw)
	if !ok {
		t.Fatal("expected a stored payload to decode")
	}
	if got.DistanceText != want.DistanceText || len(got.Polyline) != 2 {
		t.Fatalf("unexpected decoded route: %+v", got)
	}
}

func TestDecodeRoute_MalformedIsMiss(t *testing.T) {
	payloads := [][]byte{
		[]byte("not json"),
		[]byte(`[1,2,3]`),
		[]byte(""),
		[]byte(`"5.2 km"`),
	}
	for _, raw := range payloads {
		if route, ok := decodeRoute(raw); ok {
			t.Errorf("payload %q should be a miss, got %+v", raw, route)
		}
	}
}

func TestRouteCache_KeyRoundsToFiveDecimals(t *testing.T) {
	rc := &RouteCache{}
	a := domain.Coordinate{Lat: 17.3850001, Lng: 78.4867002}
	b := domain.Coordinate{Lat: 17.3850004, Lng: 78.4866998}
	to := domain.Coordinate{Lat: 17.40, Lng: 78.50}

	if rc.key(a, to) != rc.key(b, to) {
		t.Fatalf("fixes within rounding distance must share a key: %q vs %q", rc.key(a, to), rc.key(b, to))
	}

	far := domain.Coordinate{Lat: 17.39, Lng: 78.4867}
	if rc.key(a, to) == rc.key(far, to) {
		t.Fatal("distinct origins must not collide")
	}
}
