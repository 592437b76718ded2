package model

import "time"

// Property is a listing keyed by its MLS number. The MLS is client-supplied at
// creation and immutable afterwards. AgentRegistrationNumber is a weak
// reference: it is never validated against the agent collection and agent
// deletion does not cascade here.
type Property struct {
	MLS                     string    `json:"mls" bson:"_id"`
	Type                    string    `json:"type" bson:"type"`
	Price                   float64   `json:"price" bson:"price"`
	Bedrooms                int       `json:"bedrooms" bson:"bedrooms"`
	Bathrooms               int       `json:"bathrooms" bson:"bathrooms"`
	Parkings                int       `json:"parkings" bson:"parkings"`
	Size                    int       `json:"size" bson:"size"`
	YearBuilt               int       `json:"yearBuilt" bson:"yearBuilt"`
	Tax                     float64   `json:"tax" bson:"tax"`
	Status                  string    `json:"status" bson:"status"`
	Description             string    `json:"description" bson:"description"`
	AgentRegistrationNumber string    `json:"agentRegistrationNumber" bson:"agentRegistrationNumber"`
	ImageUrls               []string  `json:"imageUrls,omitempty" bson:"imageUrls,omitempty"`
	Address                 *Address  `json:"address,omitempty" bson:"address,omitempty"`
	Feature                 *Feature  `json:"feature,omitempty" bson:"feature,omitempty"`
	DateListed              time.Time `json:"dateListed" bson:"dateListed"`
	LastUpdate              time.Time `json:"lastUpdate" bson:"lastUpdate"`
}
