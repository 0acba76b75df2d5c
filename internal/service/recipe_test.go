package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipegen/internal/document"
	"github.com/pageza/recipegen/internal/mocks"
	"github.com/pageza/recipegen/internal/session"
)

func newTestService(t *testing.T, gen TextGenerator, archive DocumentArchive) (*RecipeService, string) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "recipe.pdf")
	return NewRecipeService(gen, document.NewEmitter(out), archive), out
}

func TestBuildRecipePrompt(t *testing.T) {
	prompt := BuildRecipePrompt("eggs, flour, milk", 4)

	assert.Contains(t, prompt, "You are a recipe generator.")
	assert.Contains(t, prompt, "Ingredients: eggs, flour, milk\n")
	assert.Contains(t, prompt, "Number of People: 4\n")
	assert.True(t, strings.HasSuffix(prompt, "\n\nRecipe:"))
}

func TestBuildRecipePromptIsVerbatim(t *testing.T) {
	tests := []struct {
		name        string
		ingredients string
		numPeople   int
	}{
		{"single", "rice", 1},
		{"whitespace kept", "  tofu ,  soy sauce ", 2},
		{"placeholder lookalike", "{num_people} beans", 12},
		{"unicode", "crème fraîche, jalapeño", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildRecipePrompt(tt.ingredients, tt.numPeople)
			assert.Contains(t, prompt, "Ingredients: "+tt.ingredients+"\n")
			assert.Equal(t, prompt, BuildRecipePrompt(tt.ingredients, tt.numPeople))
		})
	}
}

func TestGenerateRecipeStoresResultInSession(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Ingredients: eggs, flour, milk") &&
			strings.Contains(prompt, "Number of People: 4")
	})).Return("Step 1: ...", nil).Once()

	svc, _ := newTestService(t, gen, nil)
	sess := session.New("abc")

	recipe, err := svc.GenerateRecipe(context.Background(), sess, "eggs, flour, milk", 4)
	require.NoError(t, err)
	assert.Equal(t, "Step 1: ...", recipe)
	assert.Equal(t, "Step 1: ...", sess.Recipe)
	assert.Equal(t, "eggs, flour, milk", sess.Ingredients)
	assert.Equal(t, 4, sess.NumPeople)
	assert.True(t, sess.HasRecipe)
	gen.AssertExpectations(t)
}

func TestGenerateRecipeRejectsEmptyIngredients(t *testing.T) {
	for _, ingredients := range []string{"", "   ", "\t\n"} {
		gen := new(mocks.MockTextGenerator)
		svc, _ := newTestService(t, gen, nil)
		sess := session.New("abc")

		_, err := svc.GenerateRecipe(context.Background(), sess, ingredients, 2)

		var inputErr *InputError
		require.True(t, errors.As(err, &inputErr))
		assert.Equal(t, MsgMissingIngredients, inputErr.Error())
		assert.False(t, sess.HasRecipe)
		gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	}
}

func TestGenerateRecipeRejectsInvalidServings(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	svc, _ := newTestService(t, gen, nil)

	_, err := svc.GenerateRecipe(context.Background(), session.New("abc"), "eggs", 0)

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "num_people", inputErr.Field)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerateRecipeWrapsServiceFailure(t *testing.T) {
	quota := errors.New("quota exceeded")
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", quota).Once()

	svc, _ := newTestService(t, gen, nil)
	sess := session.New("abc")
	sess.SetRecipe("rice", 2, "earlier recipe")

	_, err := svc.GenerateRecipe(context.Background(), sess, "eggs", 2)

	var serviceErr *ServiceError
	require.True(t, errors.As(err, &serviceErr))
	assert.ErrorIs(t, err, quota)
	assert.Equal(t, "llm", serviceErr.Provider)
	assert.Equal(t, "earlier recipe", sess.Recipe, "a failed call must not touch the session")
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestDownloadRecipeBeforeGenerate(t *testing.T) {
	svc, out := newTestService(t, new(mocks.MockTextGenerator), nil)

	_, err := svc.DownloadRecipe(session.New("abc"))

	var stateErr *StateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, MsgNoRecipe, stateErr.Error())
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDownloadRecipeWritesDocument(t *testing.T) {
	svc, out := newTestService(t, new(mocks.MockTextGenerator), nil)
	sess := session.New("abc")
	sess.SetRecipe("eggs, flour, milk", 4, "Step 1: ...")

	path, err := svc.DownloadRecipe(sess)
	require.NoError(t, err)
	assert.Equal(t, out, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestShareRecipe(t *testing.T) {
	archive := new(mocks.MockDocumentArchive)
	archive.On("UploadDocument", mock.Anything, "recipes/abc/recipe.pdf", mock.MatchedBy(func(data []byte) bool {
		return bytes.HasPrefix(data, []byte("%PDF-"))
	})).Return(nil).Once()
	archive.On("GeneratePresignedURL", mock.Anything, "recipes/abc/recipe.pdf", time.Hour).
		Return("https://example.com/recipe.pdf?sig", nil).Once()

	svc, _ := newTestService(t, new(mocks.MockTextGenerator), archive)
	sess := session.New("abc")
	sess.SetRecipe("eggs", 2, "Step 1: ...")

	url, err := svc.ShareRecipe(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/recipe.pdf?sig", url)
	archive.AssertExpectations(t)
}

func TestShareRecipeWithoutArchive(t *testing.T) {
	svc, _ := newTestService(t, new(mocks.MockTextGenerator), nil)
	sess := session.New("abc")
	sess.SetRecipe("eggs", 2, "Step 1: ...")

	_, err := svc.ShareRecipe(context.Background(), sess)
	assert.ErrorIs(t, err, ErrArchiveDisabled)
	assert.False(t, svc.ArchiveEnabled())
}

func TestShareRecipeBeforeGenerate(t *testing.T) {
	archive := new(mocks.MockDocumentArchive)
	svc, _ := newTestService(t, new(mocks.MockTextGenerator), archive)

	_, err := svc.ShareRecipe(context.Background(), session.New("abc"))

	var stateErr *StateError
	assert.True(t, errors.As(err, &stateErr))
	archive.AssertNotCalled(t, "UploadDocument", mock.Anything, mock.Anything, mock.Anything)
}
