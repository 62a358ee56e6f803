package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muurk/igd-setup/internal/entries"
	"github.com/muurk/igd-setup/internal/ui"
)

func init() {
	entriesCmd.AddCommand(entriesListCmd)
	entriesCmd.AddCommand(entriesRemoveCmd)
	entriesCmd.AddCommand(entriesIgnoreCmd)
	rootCmd.AddCommand(entriesCmd)
}

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Manage configured router entries",
	Long: `List, remove, or ignore entries in the router registry.

Ignored entries stay in the registry and suppress re-discovery of the
same router, but are never updated.`,
}

var entriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured routers",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := entries.Load()
		if err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}

		all := registry.All(true)
		if len(all) == 0 {
			fmt.Println("No routers configured.")
			fmt.Println("\nUse 'igd-setup' to run the setup wizard.")
			return nil
		}

		for _, e := range all {
			title := e.Title
			if title == "" {
				title = e.UniqueID
			}
			if e.Ignored() {
				fmt.Println(ui.RenderNeutral(title + " (ignored)"))
			} else {
				fmt.Println(ui.RenderSuccess(title))
			}
			fmt.Println(ui.RenderDetail("Entry ID", e.EntryID))
			fmt.Println(ui.RenderDetail("Unique ID", e.UniqueID))
			fmt.Println(ui.RenderDetail("UDN", e.Data.UDN))
			if e.Data.OriginalUDN != "" && e.Data.OriginalUDN != e.Data.UDN {
				fmt.Println(ui.RenderDetail("Original UDN", e.Data.OriginalUDN))
			}
			fmt.Println(ui.RenderDetail("Type", e.Data.ST))
			fmt.Println(ui.RenderDetail("Location", e.Data.Location))
			if e.Data.MACAddress != "" {
				fmt.Println(ui.RenderDetail("MAC", e.Data.MACAddress))
			}
			fmt.Println()
		}
		return nil
	},
}

var entriesRemoveCmd = &cobra.Command{
	Use:   "remove <entry-id>",
	Short: "Remove a configured router",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := entries.Load()
		if err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}

		if !registry.Remove(args[0]) {
			return fmt.Errorf("no entry with ID %q", args[0])
		}
		if err := registry.Save(); err != nil {
			return err
		}
		fmt.Println(ui.RenderSuccess("Removed entry " + args[0]))
		return nil
	},
}

var entriesIgnoreCmd = &cobra.Command{
	Use:   "ignore <entry-id>",
	Short: "Ignore a router so it is not re-discovered",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := entries.Load()
		if err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}

		if !registry.Ignore(args[0]) {
			return fmt.Errorf("no entry with ID %q", args[0])
		}
		if err := registry.Save(); err != nil {
			return err
		}
		fmt.Println(ui.RenderSuccess("Ignoring entry " + args[0]))
		return nil
	},
}
