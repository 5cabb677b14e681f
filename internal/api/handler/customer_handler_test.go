package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nearshop/geocore/internal/core/domain"
	"github.com/nearshop/geocore/internal/core/ports"
	"github.com/nearshop/geocore/internal/infrastructure/feed"
)

type stubFixDispatcher struct {
	fixes []feed.PositionFix
}

func (s *stubFixDispatcher) Enqueue(fix feed.PositionFix) {
	s.fixes = append(s.fixes, fix)
}

type stubConsent struct {
	granted map[string]bool
}

func (s *stubConsent) SetConsent(customerID string, granted bool) {
	if s.granted == nil {
		s.granted = make(map[string]bool)
	}
	s.granted[customerID] = granted
}

type stubCustomers struct {
	record    *ports.CustomerRecord
	addresses map[string]string
}

func (s *stubCustomers) Find(_ context.Context, _ string) (*ports.CustomerRecord, error) {
	if s.record == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return s.record, nil
}

func (s *stubCustomers) UpdateLocation(_ context.Context, _ string, _ domain.Coordinate) error {
	return nil
}

func (s *stubCustomers) UpdateAddress(_ context.Context, customerID, address, _ string) error {
	if s.addresses == nil {
		s.addresses = make(map[string]string)
	}
	s.addresses[customerID] = address
	return nil
}

type stubGeocoder struct {
	result *ports.GeocodeResult
	err    error
}

func (s *stubGeocoder) Geocode(_ context.Context, _ string) (*ports.GeocodeResult, error) {
	return s.result, s.err
}

func (s *stubGeocoder) ReverseGeocode(_ context.Context, _ domain.Coordinate) (*ports.ReverseGeocodeResult, error) {
	return nil, domain.ErrGeocodeFailed
}

func (s *stubGeocoder) Route(_ context.Context, _, _ domain.Coordinate) (*domain.RouteSummary, error) {
	return nil, domain.ErrRouteFailed
}

func newCustomerHandler(dispatcher *stubFixDispatcher, customers *stubCustomers, geo *stubGeocoder) (*CustomerHandler, *stubTrackers) {
	trackers := newStubTrackers()
	h := NewCustomerHandler(context.Background(), trackers, dispatcher, &stubConsent{}, customers, geo)
	return h, trackers
}

func TestReportLocation_Accepted(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	dispatcher := &stubFixDispatcher{}
	h, _ := newCustomerHandler(dispatcher, &stubCustomers{}, &stubGeocoder{})

	req := httptest.NewRequest(http.MethodPut, "/v1/customers/c1/location",
		strings.NewReader(`{"lat":17.385,"lng":78.4867}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := h.ReportLocation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(dispatcher.fixes) != 1 || dispatcher.fixes[0].CustomerID != "c1" {
		t.Fatalf("fix not enqueued: %+v", dispatcher.fixes)
	}
	if dispatcher.fixes[0].Location.Lat != 17.385 {
		t.Fatalf("unexpected fix: %+v", dispatcher.fixes[0])
	}
}

func TestReportLocation_OutOfRangeRejected(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	dispatcher := &stubFixDispatcher{}
	h, _ := newCustomerHandler(dispatcher, &stubCustomers{}, &stubGeocoder{})

	req := httptest.NewRequest(http.MethodPut, "/v1/customers/c1/location",
		strings.NewReader(`{"lat":95,"lng":0}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	err := h.ReportLocation(c)
	var he *echo.HTTPError
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	if len(dispatcher.fixes) != 0 {
		t.Fatal("invalid fix must not be enqueued")
	}
}

func TestUpdateAddress_GeocodesAndPersists(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	customers := &stubCustomers{}
	geo := &stubGeocoder{result: &ports.GeocodeResult{
		Coordinate:       domain.Coordinate{Lat: 17.39, Lng: 78.49},
		FormattedAddress: "1 Test Street, Hyderabad 500001",
		Components: []ports.AddressComponent{
			{LongName: "500001", Types: []string{"postal_code"}},
		},
	}}
	h, trackers := newCustomerHandler(&stubFixDispatcher{}, customers, geo)

	req := httptest.NewRequest(http.MethodPut, "/v1/customers/c1/address",
		strings.NewReader(`{"address":"1 Test Street"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := h.UpdateAddress(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if customers.addresses["c1"] != "1 Test Street, Hyderabad 500001" {
		t.Fatalf("address not persisted: %v", customers.addresses)
	}
	snap, known := trackers.tracker.Snapshot()
	if !known || snap.Lat != 17.39 {
		t.Fatalf("tracked position not overridden: %+v known=%v", snap, known)
	}
}

func TestUpdateAddress_GeocodeFailurePropagates(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	h, _ := newCustomerHandler(&stubFixDispatcher{}, &stubCustomers{}, &stubGeocoder{err: domain.ErrGeocodeFailed})

	req := httptest.NewRequest(http.MethodPut, "/v1/customers/c1/address",
		strings.NewReader(`{"address":"nowhere"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	err := h.UpdateAddress(c)
	if err == nil {
		t.Fatal("expected geocode failure to propagate")
	}
}

func TestStartTracking_DeniedConsent(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	// The stub tracker's source never grants permission.
	h, _ := newCustomerHandler(&stubFixDispatcher{}, &stubCustomers{}, &stubGeocoder{})

	req := httptest.NewRequest(http.MethodPost, "/v1/customers/c1/tracking/start",
		strings.NewReader(`{"granted":false}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	err := h.StartTracking(c)
	if err == nil {
		t.Fatal("expected permission denial")
	}
}

func TestGetLocation_FallsBackToRecord(t *testing.T) {
	e := echo.New()

	loc := domain.Coordinate{Lat: 17.38, Lng: 78.48}
	customers := &stubCustomers{record: &ports.CustomerRecord{ID: "c1", Location: &loc}}
	h, _ := newCustomerHandler(&stubFixDispatcher{}, customers, &stubGeocoder{})

	req := httptest.NewRequest(http.MethodGet, "/v1/customers/c1/location", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := h.GetLocation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "17.38") {
		t.Fatalf("expected persisted location in body: %s", rec.Body.String())
	}
}
