package model

// Service is a medical service offered by the clinic, not to be confused
// with the application services under internal/service.
type Service struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Treatment   string `db:"treatment" json:"treatment"`
}

// ServiceLocation links a service to a location offering it.
type ServiceLocation struct {
	ServiceID  int64 `db:"service_id" json:"serviceId"`
	LocationID int64 `db:"location_id" json:"locationId"`
}
