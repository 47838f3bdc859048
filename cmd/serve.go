package cmd

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sitesmith/sitesmith/pkg/config"
	"github.com/sitesmith/sitesmith/pkg/webui"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve project previews with live reload",
	Long: `Starts a local HTTP server. Every project in the version ledger is
browsable at /preview/<project>; pages hold a websocket and reload when a
new version is saved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		addr := serveAddr
		if addr == "" {
			addr = cfg.ServeAddr
		}

		srv := webui.NewServer(openStore())
		go srv.WatchLedger(cmd.Context(), 2*time.Second)

		color.Cyan("Serving previews on http://%s", addr)
		return srv.ListenAndServe(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from config)")
}
