package dto

// FeatureDto is the wire shape for the walkability score block. Scores are
// open-ended integers; no range validation is applied.
type FeatureDto struct {
	WalkScore      *int `json:"walkScore,omitempty"`
	TransitScore   *int `json:"transitScore,omitempty"`
	BikeScore      *int `json:"bikeScore,omitempty"`
	EducationScore *int `json:"educationScore,omitempty"`
}
