package dto

// AddressDto is the wire shape for a civic address. Used for reads and for
// the full-replace add/update operations on the address sub-resource.
type AddressDto struct {
	StreetNumber string `json:"streetNumber" validate:"required"`
	StreetName   string `json:"streetName" validate:"required"`
	Unit         string `json:"unit,omitempty"`
	City         string `json:"city" validate:"required"`
	Province     string `json:"province" validate:"required"`
	PostalCode   string `json:"postalCode" validate:"required"`
	Country      string `json:"country" validate:"required"`
}

// AddressUpdateDto is the JSON-Patch target for the address sub-resource.
type AddressUpdateDto struct {
	StreetNumber *string `json:"streetNumber,omitempty"`
	StreetName   *string `json:"streetName,omitempty"`
	Unit         *string `json:"unit,omitempty"`
	City         *string `json:"city,omitempty"`
	Province     *string `json:"province,omitempty"`
	PostalCode   *string `json:"postalCode,omitempty"`
	Country      *string `json:"country,omitempty"`
}
