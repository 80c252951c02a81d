package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command for the CLI.  It delegates to
// subcommands defined in client.go and server.go.  See init
// functions in those files for flag definitions.
var rootCmd = &cobra.Command{
	Use:           "userdir",
	Short:         "CLI for the user directory API",
	Long:          "Command line interface to run the user directory server and interact with it as a gRPC client.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.  It should be invoked from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
