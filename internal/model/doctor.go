package model

// Doctor is a clinic physician. LocationID and ServiceID reference the
// location they work at and the service they belong to.
type Doctor struct {
	ID                int64  `db:"id" json:"id"`
	Name              string `db:"name" json:"name"`
	Surname           string `db:"surname" json:"surname"`
	LocationID        int64  `db:"location_id" json:"locationId"`
	BasicInfo         string `db:"basic_info" json:"basicInfo"`
	ServiceID         int64  `db:"service_id" json:"serviceId"`
	IsResponsible     bool   `db:"is_responsible" json:"isResponsible"`
	IsResponsibleArea *bool  `db:"is_responsible_area" json:"isResponsibleArea,omitempty"`
}
