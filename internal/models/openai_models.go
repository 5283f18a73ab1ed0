package models

// OpenAIClassificationResponse is the strict JSON shape the classification
// prompt instructs the model to return.
type OpenAIClassificationResponse struct {
	Label string `json:"label"`
}
