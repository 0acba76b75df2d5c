package api

import "html/template"

// GenerateRequest is the body of a generation request, accepted both as form
// fields and as JSON
type GenerateRequest struct {
	Ingredients string `form:"ingredients" json:"ingredients"`
	NumPeople   int    `form:"num_people" json:"num_people"`
}

// RecipeResponse represents the response structure for recipe-related API endpoints
type RecipeResponse struct {
	Recipe      string `json:"recipe"`
	Ingredients string `json:"ingredients"`
	NumPeople   int    `json:"num_people"`
}

// ShareResponse carries a temporary link to an archived recipe document
type ShareResponse struct {
	URL string `json:"url"`
}

// pageData feeds the index template
type pageData struct {
	Ingredients string
	NumPeople   int
	Recipe      template.HTML
	Warning     string
	Error       string
}
