package model

type Location struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	BasicInfo string `db:"basic_info" json:"basicInfo"`
	Contacts  string `db:"contacts" json:"contacts"`
}
