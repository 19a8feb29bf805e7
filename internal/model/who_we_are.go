package model

// WhoWeAre is the single free-text presentation row of the clinic.
type WhoWeAre struct {
	Content string `db:"content" json:"content"`
}
