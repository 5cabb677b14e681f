package domain

import "errors"

var ErrInvalidCoordinate = errors.New("invalid coordinate")
var ErrCustomerNotFound = errors.New("customer not found")
var ErrOrderNotFound = errors.New("order not found")
var ErrGeocodeFailed = errors.New("geocode failed")
var ErrRouteFailed = errors.New("route lookup failed")
var ErrPermissionDenied = errors.New("location permission denied")
