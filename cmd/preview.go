package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sitesmith/sitesmith/pkg/history"
	"github.com/sitesmith/sitesmith/pkg/preview"
)

var (
	previewVersion string
	previewOut     string
)

var previewCmd = &cobra.Command{
	Use:   "preview [project]",
	Short: "Render a project version to a standalone HTML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project := args[0]
		store := openStore()

		var v *history.Version
		var err error
		if previewVersion != "" {
			v, err = store.Get(project, previewVersion)
		} else {
			v, err = store.Latest(project)
		}
		if err != nil {
			return err
		}

		out := previewOut
		if out == "" {
			out = fmt.Sprintf("%s-v%d.html", project, v.Number)
		}
		html := preview.Render(v.Files, preview.ModeFromFiles(v.Files))
		if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
			return fmt.Errorf("writing preview: %w", err)
		}
		fmt.Printf("Rendered version %d (%s) to %s\n", v.Number, v.ID, out)
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVarP(&previewVersion, "version", "v", "", "version id (default: latest)")
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "", "output path (default: <project>-v<N>.html)")
}
