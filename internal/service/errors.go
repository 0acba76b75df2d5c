package service

import (
	"fmt"

	"github.com/pageza/recipegen/internal/document"
)

// User-facing warnings
const (
	MsgMissingIngredients = "Please enter the ingredients you have."
	MsgInvalidNumPeople   = "Number of people must be at least 1."
	MsgNoRecipe           = "Generate a recipe first."
)

// InputError reports form input that was rejected before any remote call
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// ServiceError reports a failure of the remote generation service
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
}

// UserMessage is the text shown to users. The cause is left out since it can
// carry the raw upstream response.
func (e *ServiceError) UserMessage() string {
	return fmt.Sprintf("The %s recipe service could not generate a recipe. Please try again later.", e.Provider)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// StateError reports an action that is not valid in the session's current state
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

// IOError reports a failure to write the output document
type IOError = document.IOError
