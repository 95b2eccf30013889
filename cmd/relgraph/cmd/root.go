// Package cmd is the CLI surface around the relgraph engine: migrate,
// seed, and query subcommands wiring internal/config, internal/migrate,
// and the root package together. The engine itself never imports this
// package.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "relgraph",
	Short: "Graph-to-SQL query engine toolkit",
	Long: `relgraph translates nested graph-shaped queries into SQL against a
relational schema, and reassembles the results back into the requested
shape.

This CLI wraps the engine with the operational pieces it deliberately
stays out of: connecting to a database, running migrations, and seeding
fixture data.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "relgraph.yaml",
		"Path to configuration file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfigFile returns the config file path set via --config.
func GetConfigFile() string {
	return cfgFile
}
