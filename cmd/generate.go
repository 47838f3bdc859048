package cmd

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sitesmith/sitesmith/pkg/config"
	"github.com/sitesmith/sitesmith/pkg/logging"
	"github.com/sitesmith/sitesmith/pkg/preview"
)

var (
	generateProject string
	generateOut     string
	generateModel   string
)

var generateCmd = &cobra.Command{
	Use:   "generate [description]",
	Short: "Generate a website from a natural-language description",
	Long: `Runs the full generation pipeline: language detection, planning,
architecture, and file generation. The result is saved as version 1 of the
project in the local ledger, and a preview HTML file is written next to it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.TrimSpace(args[0])
		logging.GetLogger().LogUserPrompt(prompt)

		cfg := config.Load()
		if generateModel != "" {
			cfg.Model = generateModel
		}

		project := generateProject
		if project == "" {
			project = slugify(prompt)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
		defer cancel()

		color.Cyan("Generating %q...", project)
		start := time.Now()
		res, err := newPipeline(cfg).Generate(ctx, project, prompt, nil)
		if err != nil {
			return err
		}

		v, err := openStore().Save(project, prompt, res.Files)
		if err != nil {
			return err
		}

		color.Green("Generated %d files in %s (version %d, %s)",
			len(res.Files), time.Since(start).Round(time.Second), v.Number, v.ID)
		fmt.Printf("  industry: %s\n  language: %s\n  sections: %s\n",
			res.Plan.Industry, res.Plan.LanguageMode, strings.Join(res.Plan.RequiredSections, ", "))
		for _, e := range res.Errors {
			color.Yellow("  warning: %s", e)
		}

		out := generateOut
		if out == "" {
			out = project + ".html"
		}
		html := preview.Render(res.Files, res.Plan.LanguageMode)
		if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
			return fmt.Errorf("writing preview: %w", err)
		}
		fmt.Printf("  preview: %s\n", out)
		return nil
	},
}

var slugRegex = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a project name from the prompt's first words. Arabic
// prompts rarely survive the ASCII fold, so those fall back to a timestamped
// name.
func slugify(prompt string) string {
	words := strings.Fields(strings.ToLower(prompt))
	if len(words) > 4 {
		words = words[:4]
	}
	slug := strings.Trim(slugRegex.ReplaceAllString(strings.Join(words, "-"), "-"), "-")
	if slug == "" {
		slug = "site-" + time.Now().Format("20060102-150405")
	}
	return slug
}

func init() {
	generateCmd.Flags().StringVarP(&generateProject, "project", "p", "", "project name in the version ledger (default: derived from the description)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "preview HTML output path (default: <project>.html)")
	generateCmd.Flags().StringVarP(&generateModel, "model", "m", "", "override the configured model")
}
