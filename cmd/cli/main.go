package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/client"
	"github.com/spf13/cobra"
)

var (
	host    string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "matchday",
	Short: "A CLI to run and follow club matches",
	Long: `A command-line interface for the matchday server: schedule fixtures,
run the match clock during a game and follow live scores.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	defaultHost := os.Getenv("MATCHDAY_HOST")
	if defaultHost == "" {
		defaultHost = client.DefaultBaseURL
	}
	rootCmd.PersistentFlags().StringVar(&host, "host", defaultHost, "The host address of the server")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func newClient() *client.Client {
	return client.New(host)
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
