package main

import (
	"log"

	"github.com/project-tktt/job-viewer/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobviewer",
	Short: "Browse government job listings from the command line",
}

// Execute registers the subcommands and runs the CLI
func Execute(cfg *config.Config) {
	rootCmd.AddCommand(ListCmd(cfg))
	rootCmd.AddCommand(DetailsCmd(cfg))
	rootCmd.AddCommand(LinkCmd(cfg))
	rootCmd.AddCommand(WatchCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
