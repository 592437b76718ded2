package model

// Address is a civic address embedded in a Property or an Agent brokerage.
// A Property holds at most one; absence is represented by a nil pointer.
type Address struct {
	StreetNumber string `json:"streetNumber" bson:"streetNumber"`
	StreetName   string `json:"streetName" bson:"streetName"`
	Unit         string `json:"unit,omitempty" bson:"unit,omitempty"`
	City         string `json:"city" bson:"city"`
	Province     string `json:"province" bson:"province"`
	PostalCode   string `json:"postalCode" bson:"postalCode"`
	Country      string `json:"country" bson:"country"`
}
