package models

// Station represents a metro station with its fare-basis price.
// The price is a reference number used to derive trip fares from the
// absolute difference between two stations; it is not a charged amount
// by itself.
type Station struct {
	Name  string `json:"name" db:"name"`
	Price int    `json:"price" db:"price"`
}
