package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	host    string
	timeout time.Duration
	asJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "grindzone-cli",
	Short: "A CLI for the GrindZone tournament API",
	Long: `A command-line interface for browsing tournaments, registering teams
and checking payments on a running GrindZone server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of a table")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
