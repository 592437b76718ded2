package model

// Feature holds neighbourhood walkability scores for a Property. Each score is
// optional; the whole block is absent (nil) until added through the feature
// sub-resource.
type Feature struct {
	WalkScore      *int `json:"walkScore,omitempty" bson:"walkScore,omitempty"`
	TransitScore   *int `json:"transitScore,omitempty" bson:"transitScore,omitempty"`
	BikeScore      *int `json:"bikeScore,omitempty" bson:"bikeScore,omitempty"`
	EducationScore *int `json:"educationScore,omitempty" bson:"educationScore,omitempty"`
}
