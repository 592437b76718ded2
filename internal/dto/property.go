package dto

import "time"

// PropertyDto is the read shape for a listing.
type PropertyDto struct {
	MLS                     string      `json:"mls"`
	Type                    string      `json:"type"`
	Price                   float64     `json:"price"`
	Bedrooms                int         `json:"bedrooms"`
	Bathrooms               int         `json:"bathrooms"`
	Parkings                int         `json:"parkings"`
	Size                    int         `json:"size"`
	YearBuilt               int         `json:"yearBuilt"`
	Tax                     float64     `json:"tax"`
	Status                  string      `json:"status"`
	Description             string      `json:"description"`
	AgentRegistrationNumber string      `json:"agentRegistrationNumber"`
	ImageUrls               []string    `json:"imageUrls,omitempty"`
	Address                 *AddressDto `json:"address,omitempty"`
	Feature                 *FeatureDto `json:"feature,omitempty"`
	DateListed              time.Time   `json:"dateListed"`
	LastUpdate              time.Time   `json:"lastUpdate"`
}

// PropertyCreateDto is the creation shape. The MLS is client-supplied here and
// immutable afterwards; dateListed and lastUpdate are server-owned.
type PropertyCreateDto struct {
	MLS                     string      `json:"mls" validate:"required"`
	Type                    string      `json:"type" validate:"required"`
	Price                   float64     `json:"price" validate:"required"`
	Bedrooms                int         `json:"bedrooms"`
	Bathrooms               int         `json:"bathrooms"`
	Parkings                int         `json:"parkings"`
	Size                    int         `json:"size" validate:"required"`
	YearBuilt               int         `json:"yearBuilt" validate:"required"`
	Tax                     float64     `json:"tax" validate:"required"`
	Status                  string      `json:"status" validate:"required"`
	Description             string      `json:"description"`
	AgentRegistrationNumber string      `json:"agentRegistrationNumber"`
	ImageUrls               []string    `json:"imageUrls,omitempty"`
	Address                 *AddressDto `json:"address,omitempty"`
	Feature                 *FeatureDto `json:"feature,omitempty"`
}

// PropertyUpdateDto covers the mutable fields of a listing. PUT treats it as a
// full replacement (absent fields reset to zero values); PATCH applies a
// JSON-Patch document to a fully populated copy and merges back sparsely.
type PropertyUpdateDto struct {
	Type                    *string     `json:"type,omitempty"`
	Price                   *float64    `json:"price,omitempty"`
	Bedrooms                *int        `json:"bedrooms,omitempty"`
	Bathrooms               *int        `json:"bathrooms,omitempty"`
	Parkings                *int        `json:"parkings,omitempty"`
	Size                    *int        `json:"size,omitempty"`
	YearBuilt               *int        `json:"yearBuilt,omitempty"`
	Tax                     *float64    `json:"tax,omitempty"`
	Status                  *string     `json:"status,omitempty"`
	Description             *string     `json:"description,omitempty"`
	AgentRegistrationNumber *string     `json:"agentRegistrationNumber,omitempty"`
	ImageUrls               []string    `json:"imageUrls,omitempty"`
	Address                 *AddressDto `json:"address,omitempty"`
	Feature                 *FeatureDto `json:"feature,omitempty"`
}
