package domain

import (
	"time"

	"github.com/google/uuid"
)

type NeedType string

const (
	NeedWater      NeedType = "Water"
	NeedFood       NeedType = "Food"
	NeedMedical    NeedType = "Medical"
	NeedShelter    NeedType = "Shelter"
	NeedEvacuation NeedType = "Evacuation"
	NeedOther      NeedType = "Other"
)

func (n NeedType) Valid() bool {
	switch n {
	case NeedWater, NeedFood, NeedMedical, NeedShelter, NeedEvacuation, NeedOther:
		return true
	}
	return false
}

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusOngoing   RequestStatus = "ongoing"
	StatusHelped    RequestStatus = "helped"
	StatusCancelled RequestStatus = "cancelled"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusOngoing, StatusHelped, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the status machine allows moving from
// one status to another. Moves are forward-only: helped and cancelled
// are terminal, and a record never returns to pending.
func CanTransition(from, to RequestStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusOngoing || to == StatusCancelled
	case StatusOngoing:
		return to == StatusHelped || to == StatusCancelled
	}
	return false
}

// Request is one help-seeker submission tracked through its lifecycle.
// Everything except Status and Responder is immutable after creation.
// Lat/Lon are either both set or both nil.
type Request struct {
	ID        uuid.UUID     `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Address   string        `json:"address"`
	Need      NeedType      `json:"need"`
	Urgency   string        `json:"urgency"`
	Extra     string        `json:"extra"`
	Lat       *float64      `json:"lat,omitempty"`
	Lon       *float64      `json:"lon,omitempty"`
	Status    RequestStatus `json:"status"`
	Responder string        `json:"responder,omitempty"`
}

// HasCoordinates reports whether the record carries a usable location.
func (r *Request) HasCoordinates() bool {
	return r.Lat != nil && r.Lon != nil
}
