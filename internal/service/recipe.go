package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/pageza/recipegen/internal/session"
)

// ErrArchiveDisabled is returned by ShareRecipe when no document archive is configured
var ErrArchiveDisabled = errors.New("document archive is not configured")

const shareLinkExpiry = time.Hour

// DocumentEmitter lays a recipe out as a document
type DocumentEmitter interface {
	Generate(recipe, ingredients string, numPeople int) (string, error)
	Render(w io.Writer, recipe, ingredients string, numPeople int) error
}

// DocumentArchive stores rendered documents and hands out temporary links to them
type DocumentArchive interface {
	UploadDocument(ctx context.Context, objectKey string, body io.Reader) error
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}

// RecipeService generates recipes and their documents for a session
type RecipeService struct {
	generator TextGenerator
	provider  string
	emitter   DocumentEmitter
	archive   DocumentArchive
}

// NewRecipeService creates a new RecipeService instance. archive may be nil.
func NewRecipeService(generator TextGenerator, emitter DocumentEmitter, archive DocumentArchive) *RecipeService {
	return &RecipeService{
		generator: generator,
		provider:  ProviderName(generator),
		emitter:   emitter,
		archive:   archive,
	}
}

// ArchiveEnabled reports whether ShareRecipe can be used
func (s *RecipeService) ArchiveEnabled() bool {
	return s.archive != nil
}

// GenerateRecipe asks the generation service for a recipe and records the
// result in sess. The returned text is the unmodified service response.
func (s *RecipeService) GenerateRecipe(ctx context.Context, sess *session.Session, ingredients string, numPeople int) (string, error) {
	if strings.TrimSpace(ingredients) == "" {
		return "", &InputError{Field: "ingredients", Message: MsgMissingIngredients}
	}
	if numPeople < 1 {
		return "", &InputError{Field: "num_people", Message: MsgInvalidNumPeople}
	}

	prompt := BuildRecipePrompt(ingredients, numPeople)
	log.Printf("[RecipeService] Generating recipe for %d people with %s", numPeople, s.provider)

	recipe, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[RecipeService] Generation failed: %v", err)
		return "", &ServiceError{Provider: s.provider, Err: err}
	}

	sess.SetRecipe(ingredients, numPeople, recipe)
	return recipe, nil
}

// DownloadRecipe writes the session's recipe document and returns its path
func (s *RecipeService) DownloadRecipe(sess *session.Session) (string, error) {
	if !sess.HasRecipe {
		return "", &StateError{Message: MsgNoRecipe}
	}

	path, err := s.emitter.Generate(sess.Recipe, sess.Ingredients, sess.NumPeople)
	if err != nil {
		return "", err
	}
	return path, nil
}

// ShareRecipe uploads the session's recipe document to the archive and returns
// a presigned link to it.
func (s *RecipeService) ShareRecipe(ctx context.Context, sess *session.Session) (string, error) {
	if !sess.HasRecipe {
		return "", &StateError{Message: MsgNoRecipe}
	}
	if s.archive == nil {
		return "", ErrArchiveDisabled
	}

	var buf bytes.Buffer
	if err := s.emitter.Render(&buf, sess.Recipe, sess.Ingredients, sess.NumPeople); err != nil {
		return "", err
	}

	key := fmt.Sprintf("recipes/%s/recipe.pdf", sess.ID)
	if err := s.archive.UploadDocument(ctx, key, bytes.NewReader(buf.Bytes())); err != nil {
		return "", err
	}

	url, err := s.archive.GeneratePresignedURL(ctx, key, shareLinkExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	log.Printf("[RecipeService] Shared recipe for session %s", sess.ID)
	return url, nil
}
