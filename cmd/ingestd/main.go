// Package main implements the ingestd daemon and CLI.
//
// ingestd turns a remote repository reference into a single text artifact by
// driving an external packer tool. It runs as an HTTP daemon (serve) or as a
// one-shot pipeline from the terminal (ingest).
//
// Usage:
//
//	# Start the daemon with defaults
//	ingestd serve
//
//	# Configure via environment
//	INGESTD_SERVER_PORT=8420 INGESTD_TOOL_BINARY=repomix ingestd serve
//
//	# One-shot ingestion to stdout
//	ingestd ingest https://github.com/acme/widgets
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var version = "dev"

// configPath is the optional YAML config file location.
var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ingestd",
	Short: "Repository-ingestion execution orchestrator",
	Long: `ingestd accepts a remote repository reference, drives an external packer
tool to serialize the repository into a single text artifact, and returns the
artifact's content.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ingestCmd)
}
