package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pageza/recipegen/config"
	"github.com/pageza/recipegen/internal/document"
	"github.com/pageza/recipegen/internal/service"
	"github.com/pageza/recipegen/internal/session"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F780FF")).Bold(true)
	inputStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")).Italic(true)
	recipeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E9E9F4"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
)

type generateOptions struct {
	ingredients string
	numPeople   int
	writePDF    bool
	output      string
}

// newGeneratorFunc is replaced in tests
var newGeneratorFunc = func(cmd *cobra.Command, cfg *config.Config) (service.TextGenerator, error) {
	return service.NewTextGenerator(cmd.Context(), cfg)
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one recipe and print it",
		Long: `Generate a recipe from the given ingredients and print it to the terminal.

Examples:
  recipegen generate --ingredients "eggs, flour, milk" --people 4
  recipegen generate --ingredients "rice, beans" --pdf --output dinner.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return runGenerate(cmd, cfg, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.ingredients, "ingredients", "i", "", "Comma-separated ingredients you have")
	cmd.Flags().IntVarP(&opts.numPeople, "people", "n", session.DefaultNumPeople, "Number of people to serve")
	cmd.Flags().BoolVar(&opts.writePDF, "pdf", false, "Also write the recipe as a PDF")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "PDF output path (defaults to RECIPE_PDF_PATH)")
	return cmd
}

func runGenerate(cmd *cobra.Command, cfg *config.Config, opts *generateOptions) error {
	generator, err := newGeneratorFunc(cmd, cfg)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = cfg.PDFOutputPath
	}
	recipes := service.NewRecipeService(generator, document.NewEmitter(output), nil)
	sess := session.New(session.NewSessionID())
	out := cmd.OutOrStdout()

	if _, err := recipes.GenerateRecipe(cmd.Context(), sess, opts.ingredients, opts.numPeople); err != nil {
		var inputErr *service.InputError
		if errors.As(err, &inputErr) {
			fmt.Fprintln(out, warningStyle.Render(inputErr.Message))
		}
		return err
	}

	printRecipe(out, sess)

	if !opts.writePDF {
		return nil
	}
	path, err := recipes.DownloadRecipe(sess)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, successStyle.Render("Saved "+path))
	return nil
}

func printRecipe(out io.Writer, sess *session.Session) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("Ingredients:"))
	fmt.Fprintln(out, inputStyle.Render(sess.Ingredients))
	fmt.Fprintln(out, headerStyle.Render("Serves:"), inputStyle.Render(fmt.Sprint(sess.NumPeople)))
	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("Generated Recipe"))
	fmt.Fprintln(out, recipeStyle.Render(sess.Recipe))
	fmt.Fprintln(out)
}
