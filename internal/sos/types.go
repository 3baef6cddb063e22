package sos

import (
	"sos-srv/internal/model"
	"sos-srv/pkg/paginator"
)

type CreateInput struct {
	Location model.Location
}

type AcceptInput struct {
	AlertID           string
	ResponderLocation model.Location
}

type RelayLocationInput struct {
	AlertID  string
	Location model.Location
}

type HistoryInput struct {
	Paginate paginator.PaginateQuery
}

// ValidLocation reports whether loc is a real coordinate pair.
func ValidLocation(loc model.Location) bool {
	return loc.Lat >= -90 && loc.Lat <= 90 && loc.Lng >= -180 && loc.Lng <= 180
}
