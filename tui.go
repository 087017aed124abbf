package main

import (
	"unisearch/models"
	"unisearch/tui"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the search widget in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		// log lines would tear the alternate screen
		if cfg.LogLevel == "info" || cfg.LogLevel == "debug" {
			logger.SetLogLevel("error")
		}

		ctrl := models.NewSearchController(newDirectory(cfg), models.ControllerOptions{
			AutoSearch: cfg.Search.AutoSearch,
		})
		exporter := models.NewCardExporter(models.JPEGRasterizer{
			Quality: cfg.Export.Quality,
			Scale:   cfg.Export.Scale,
		})

		m := tui.New(ctrl, exporter, tui.Options{
			AutoSearch: cfg.Search.AutoSearch,
			Debounce:   cfg.Search.Debounce,
			Dropdown:   cfg.Search.Dropdown,
			ExportDir:  cfg.Export.Dir,
		})
		if err := tui.Run(m); err != nil {
			return serr.Wrap(err, "terminal UI failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
