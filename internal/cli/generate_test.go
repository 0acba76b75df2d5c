package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipegen/config"
	"github.com/pageza/recipegen/internal/mocks"
	"github.com/pageza/recipegen/internal/service"
)

func withGenerator(t *testing.T, generator service.TextGenerator) {
	t.Helper()
	original := newGeneratorFunc
	newGeneratorFunc = func(*cobra.Command, *config.Config) (service.TextGenerator, error) {
		return generator, nil
	}
	t.Cleanup(func() { newGeneratorFunc = original })
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	return cmd, &out
}

func TestRunGenerate(t *testing.T) {
	generator := new(mocks.MockTextGenerator)
	generator.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return bytes.Contains([]byte(prompt), []byte("Number of People: 4"))
	})).Return("Step 1: Whisk everything.", nil).Once()
	withGenerator(t, generator)

	cmd, out := newTestCommand()
	cfg := &config.Config{PDFOutputPath: filepath.Join(t.TempDir(), "recipe.pdf")}

	err := runGenerate(cmd, cfg, &generateOptions{ingredients: "eggs, flour, milk", numPeople: 4})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "eggs, flour, milk")
	assert.Contains(t, out.String(), "Step 1: Whisk everything.")
	assert.NoFileExists(t, cfg.PDFOutputPath)
	generator.AssertExpectations(t)
}

func TestRunGenerateWritesPDF(t *testing.T) {
	generator := new(mocks.MockTextGenerator)
	generator.On("Generate", mock.Anything, mock.Anything).Return("Step 1: Boil the rice.", nil)
	withGenerator(t, generator)

	cmd, out := newTestCommand()
	output := filepath.Join(t.TempDir(), "dinner.pdf")
	cfg := &config.Config{PDFOutputPath: filepath.Join(t.TempDir(), "recipe.pdf")}

	err := runGenerate(cmd, cfg, &generateOptions{ingredients: "rice", numPeople: 2, writePDF: true, output: output})

	require.NoError(t, err)
	assert.FileExists(t, output)
	assert.NoFileExists(t, cfg.PDFOutputPath)
	assert.Contains(t, out.String(), "Saved "+output)
}

func TestRunGenerateMissingIngredients(t *testing.T) {
	generator := new(mocks.MockTextGenerator)
	withGenerator(t, generator)

	cmd, out := newTestCommand()

	err := runGenerate(cmd, &config.Config{}, &generateOptions{ingredients: " ", numPeople: 1})

	var inputErr *service.InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Contains(t, out.String(), service.MsgMissingIngredients)
	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"serve", "generate"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}
