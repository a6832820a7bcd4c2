package domain

type SubmitRequestRequest struct {
	Name    string   `json:"name" validate:"required"`
	Phone   string   `json:"phone" validate:"required,phone"`
	Address string   `json:"address" validate:"required_without=Lat"`
	Need    NeedType `json:"need" validate:"required,oneof=Water Food Medical Shelter Evacuation Other"`
	Urgency string   `json:"urgency" validate:"required"`
	Extra   string   `json:"extra"`

	// Manual coordinates, used instead of geocoding when supplied.
	// Either both or neither.
	Lat *float64 `json:"lat" validate:"omitempty,lat"`
	Lon *float64 `json:"lon" validate:"omitempty,lng"`
}

type SubmitRequestResponse struct {
	ID       string        `json:"id"`
	Status   RequestStatus `json:"status"`
	Geocoded bool          `json:"geocoded"`
}

type UpdateStatusRequest struct {
	Status    RequestStatus `json:"status" validate:"required,oneof=pending ongoing helped cancelled"`
	Responder string        `json:"responder" validate:"required_if=Status ongoing"`
}

type ListRequestsResponse struct {
	Requests []*Request `json:"requests"`
	Total    int        `json:"total"`
	// Skipped counts rows the backend could not decode; they are
	// omitted from Requests, never an error.
	Skipped int `json:"skipped,omitempty"`
}

type NearbyRequest struct {
	Lat      float64 `json:"lat" validate:"lat"`
	Lng      float64 `json:"lng" validate:"lng"`
	RadiusKM float64 `json:"radius_km" validate:"min=0.1,max=500"`
}

type NearbyItem struct {
	Request    *Request `json:"request"`
	DistanceKM float64  `json:"distance_km"`
}

type NearbyResponse struct {
	Requests []NearbyItem `json:"requests"`
}
