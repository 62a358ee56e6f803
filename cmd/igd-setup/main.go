// Igd-setup discovers and registers UPnP/IGD routers.
//
// It scans the local network for Internet Gateway Devices over SSDP,
// guides the user through setting one up, and keeps a registry of
// configured routers so re-discoveries update existing entries instead
// of creating duplicates.
//
// Usage:
//
//	igd-setup [command] [flags]
//
// Running without arguments launches the interactive wizard.
// See 'igd-setup --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/igd-setup/internal/logging"
	"github.com/muurk/igd-setup/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "igd-setup",
	Short: "UPnP/IGD Router Setup Utility",
	Long: `A standalone utility for discovering and registering UPnP/IGD routers.

Scans the local network for Internet Gateway Devices over SSDP, guides
you through setup, and maintains a registry of configured routers.

If no command is specified, the interactive wizard will launch automatically.`,
	Version: version.Short(),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run wizard when no subcommand provided
		return runSetup(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("igd-setup %s\n", version.String())
	},
}
