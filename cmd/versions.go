package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions [project]",
	Short: "List a project's versions, or all projects",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()

		if len(args) == 0 {
			projects, err := store.Projects()
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("No projects yet. Run: sitesmith generate \"your website description\"")
				return nil
			}
			for _, p := range projects {
				fmt.Println(p)
			}
			return nil
		}

		summaries, err := store.List(args[0])
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tID\tCREATED\tFILES\tPROMPT")
		for _, s := range summaries {
			prompt := s.Prompt
			if runes := []rune(prompt); len(runes) > 48 {
				prompt = string(runes[:45]) + "..."
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
				s.Number, s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04"), s.FileCount, prompt)
		}
		return w.Flush()
	},
}
