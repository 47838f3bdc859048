package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sitesmith/sitesmith/pkg/config"
	"github.com/sitesmith/sitesmith/pkg/discovery"
	"github.com/sitesmith/sitesmith/pkg/editor"
	"github.com/sitesmith/sitesmith/pkg/logging"
)

var (
	editProject string
	editDir     string
)

var editCmd = &cobra.Command{
	Use:   "edit [instruction]",
	Short: "Apply a natural-language edit to an existing project",
	Long: `Identifies which files the instruction concerns, generates minimal
patches for them, and validates every patch against the current content
before applying it. With --project the edit runs against the latest ledger
version and saves a new one; with --dir it runs against an on-disk project
and writes the changed files back.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		instruction := strings.TrimSpace(args[0])
		logging.GetLogger().LogUserPrompt(instruction)

		if (editProject == "") == (editDir == "") {
			return fmt.Errorf("exactly one of --project or --dir is required")
		}

		cfg := config.Load()
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		if editDir != "" {
			return editOnDisk(ctx, cfg, instruction)
		}
		return editLedger(ctx, cfg, instruction)
	},
}

func editLedger(ctx context.Context, cfg *config.Config, instruction string) error {
	store := openStore()
	latest, err := store.Latest(editProject)
	if err != nil {
		return err
	}

	out, err := newPipeline(cfg).Edit(ctx, editProject, editor.EditRequest{Instruction: instruction}, latest.Files)
	if err != nil {
		return err
	}
	reportEdit(out.Result)
	if !out.Result.Success {
		return fmt.Errorf("edit did not change any files")
	}

	v, err := store.Save(editProject, instruction, out.Files)
	if err != nil {
		return err
	}
	color.Green("Saved version %d (%s)", v.Number, v.ID)
	return nil
}

func editOnDisk(ctx context.Context, cfg *config.Config, instruction string) error {
	ws, err := discovery.LoadDir(editDir)
	if err != nil {
		return err
	}

	out, err := newPipeline(cfg).Edit(ctx, "dir:"+editDir, editor.EditRequest{Instruction: instruction}, ws.FileMap())
	if err != nil {
		return err
	}
	reportEdit(out.Result)
	if !out.Result.Success {
		return fmt.Errorf("edit did not change any files")
	}

	for _, rel := range out.Result.FilesChanged {
		path := filepath.Join(editDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(out.Files[rel]), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", rel, err)
		}
	}
	color.Green("Wrote %d file(s) to %s", len(out.Result.FilesChanged), editDir)
	return nil
}

func reportEdit(res *editor.EditResult) {
	for _, p := range res.Patches {
		kind := "patched"
		if p.Diff == editor.RegeneratedMarker {
			kind = "regenerated"
		}
		fmt.Printf("  %s %s (%s)\n", kind, p.Path, p.Summary)
	}
	for _, e := range res.Errors {
		color.Yellow("  failed: %s", e)
	}
}

func init() {
	editCmd.Flags().StringVarP(&editProject, "project", "p", "", "project in the version ledger")
	editCmd.Flags().StringVarP(&editDir, "dir", "d", "", "on-disk project directory")
}
