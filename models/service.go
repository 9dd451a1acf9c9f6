package models

type Credential struct {
	Icon  string `json:"icon"`
	Text  string `json:"text"`
	Color string `json:"color"`
}

type Technician struct {
	Name        string       `json:"name"`
	Title       string       `json:"title"`
	Location    GeoPoint     `json:"location"`
	Credentials []Credential `json:"credentials"`
}

// ServiceRecord is what a lookup by service identifier returns. Technician.Location
// is the technician's starting point for a new tracking session.
type ServiceRecord struct {
	ServiceID     string     `json:"service_id"`
	DisplayID     string     `json:"display_id"`
	ServiceType   string     `json:"service_type"`
	ScheduledTime string     `json:"scheduled_time"`
	Status        Status     `json:"status"`
	Technician    Technician `json:"technician"`
	Customer      GeoPoint   `json:"customer"`
}
