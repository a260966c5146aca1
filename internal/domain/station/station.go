// Package station holds the authorised fuel station model.
package station

import "strings"

// Status tells whether refuelling at a station is mandatory or conditional.
type Status string

// Statuses.
const (
	StatusOK          Status = "ok"
	StatusConditioned Status = "conditioned"
)

// ParseStatus maps dataset values to a Status. Anything not explicitly ok is conditioned.
func ParseStatus(s string) Status {
	if strings.EqualFold(strings.TrimSpace(s), string(StatusOK)) {
		return StatusOK
	}
	return StatusConditioned
}

// Station is an authorised refuelling point.
type Station struct {
	ID           string `json:"id"`
	Country      string `json:"country"`
	Network      string `json:"network"`
	Name         string `json:"name"`
	Status       Status `json:"status"`
	Instructions string `json:"instructions"`
}

// Filters narrows the station list. Empty fields do not constrain.
type Filters struct {
	Country  string
	Status   Status
	Network  string
	FreeText string
}

// IsEmpty reports whether no filter is set.
func (f Filters) IsEmpty() bool {
	return f.Country == "" && f.Status == "" && f.Network == "" && f.FreeText == ""
}

// Hit is a scored station.
type Hit struct {
	Station
	Score int
}
