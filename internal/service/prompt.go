package service

import (
	"strconv"
	"strings"
)

const recipePromptTemplate = `You are a recipe generator. Given a list of available ingredients and the number of people to serve, generate a detailed, step-by-step recipe. The recipe should include clear instructions, approximate quantities, and cooking tips when applicable.

Ingredients: {ingredients}
Number of People: {num_people}

Recipe:`

// BuildRecipePrompt substitutes the ingredients and serving count into the recipe template.
// Both values appear verbatim in the result.
func BuildRecipePrompt(ingredients string, numPeople int) string {
	r := strings.NewReplacer(
		"{ingredients}", ingredients,
		"{num_people}", strconv.Itoa(numPeople),
	)
	return r.Replace(recipePromptTemplate)
}
