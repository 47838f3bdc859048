package cmd

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sitesmith/sitesmith/pkg/config"
	"github.com/sitesmith/sitesmith/pkg/history"
	"github.com/sitesmith/sitesmith/pkg/llm"
	"github.com/sitesmith/sitesmith/pkg/pipeline"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sitesmith",
	Short: "AI website generator for Arabic and English sites",
	Long: `Sitesmith turns a natural-language description (Arabic or English) into a
small React + Tailwind website, keeps every result as an immutable version,
and applies follow-up edit requests with patch-based precision.

Typical flow:
  sitesmith generate "مطعم مأكولات بحرية في دبي" --project albahr
  sitesmith serve
  sitesmith edit "make the hero title bigger" --project albahr`,
	SilenceUsage: true,
}

// Execute runs the CLI. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(versionCmd)
}

func versionsRoot() string {
	return filepath.Join(config.ConfigDirName, "versions")
}

func openStore() *history.Store {
	return history.NewStore(versionsRoot())
}

func newPipeline(cfg *config.Config) *pipeline.Pipeline {
	return pipeline.New(llm.NewFromConfig(cfg), cfg)
}
