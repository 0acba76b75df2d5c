package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipegen",
		Short: "Recipegen - recipes from the ingredients you have",
		Long: `Recipegen turns a list of available ingredients and a serving count into a
step-by-step recipe using a hosted language model, and lays the result out as a
downloadable PDF.

The provider is chosen with LLM_PROVIDER (gemini, openai or deepseek) and needs
the matching API key (GOOGLE_API_KEY, OPENAI_API_KEY or DEEPSEEK_API_KEY).`,
		SilenceUsage: true,
	}
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newGenerateCmd())
	return cmd
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
