package main

import (
	"unisearch/web"

	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web widget",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("address"); addr != "" {
			cfg.Server.Address = addr
		}

		app, err := web.NewApp(cfg, newDirectory(cfg))
		if err != nil {
			return serr.Wrap(err, "failed to set up web app")
		}

		srv := web.NewServer(app)
		if err := web.Run(srv, cfg.Server.Address); err != nil {
			return serr.Wrap(err, "web server stopped")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("address", "", "listen address, overrides server.address")
	rootCmd.AddCommand(serveCmd)
}
