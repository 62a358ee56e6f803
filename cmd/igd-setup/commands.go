package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/igd-setup/internal/arp"
	"github.com/muurk/igd-setup/internal/entries"
	"github.com/muurk/igd-setup/internal/flow"
	"github.com/muurk/igd-setup/internal/logging"
	"github.com/muurk/igd-setup/internal/ssdp"
	"github.com/muurk/igd-setup/internal/ui"
	"github.com/muurk/igd-setup/internal/wizard/tui"
)

// Command flags
var (
	scanWait    int
	addUniqueID string
	autoConfirm bool
	noDescribe  bool
)

func init() {
	rootCmd.PersistentFlags().IntVar(&scanWait, "wait", 3, "SSDP search response window in seconds")
	rootCmd.PersistentFlags().BoolVar(&noDescribe, "no-describe", false, "Skip fetching device descriptions")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(watchCmd)
}

// logReloader satisfies flow.Reloader for a standalone tool: entries
// are not live-loaded here, so a reload is just recorded.
type logReloader struct{}

func (logReloader) Reload(_ context.Context, entryID string) error {
	logging.Info("Entry reload requested")
	fmt.Println(ui.RenderNeutral("Reload requested for entry " + entryID))
	return nil
}

// newScanner builds a scanner from the shared flags
func newScanner() *ssdp.Scanner {
	scanner := ssdp.NewScanner()
	scanner.Wait = time.Duration(scanWait) * time.Second
	scanner.FetchDescriptions = !noDescribe
	return scanner
}

// newHandler loads the registry and wires up a flow handler
func newHandler() (*flow.Handler, *entries.Registry, error) {
	registry, err := entries.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load registry: %w", err)
	}
	handler := flow.NewHandler(registry, newScanner(), arp.Resolver{}, logReloader{})
	return handler, registry, nil
}

// scanCmd discovers IGD routers on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for IGD routers on the network",
	Long: `Scan for UPnP Internet Gateway Devices using SSDP discovery.

This command broadcasts M-SEARCH requests for both the IGDv1 and IGDv2
device types and displays all responding routers with their names,
unique identifiers, and description URLs.`,
	Example: `  # Scan with the default 3-second response window
  igd-setup scan

  # Longer window for slow networks
  igd-setup scan --wait 10

  # Skip description fetches for a faster scan
  igd-setup scan --no-describe`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for IGD routers (wait: %ds)...\n\n", scanWait)

	discoveries, err := newScanner().Search(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(discoveries) == 0 {
		fmt.Println("No routers found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure your router has UPnP/IGD enabled")
		fmt.Println("  - Check that your firewall allows SSDP (UDP port 1900)")
		fmt.Println("  - Verify multicast works on this network interface")
		fmt.Println("  - Try increasing --wait for slower networks")
		return nil
	}

	registry, err := entries.Load()
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	configured := registry.UniqueIDs(true)

	fmt.Printf("Found %d router(s):\n\n", len(discoveries))
	for i, d := range discoveries {
		status := "new"
		if configured[d.USN] {
			status = "configured"
		}
		fmt.Printf("%d. %s [%s]\n", i+1, d.FriendlyLabel(), status)
		fmt.Printf("   USN:      %s\n", d.USN)
		fmt.Printf("   Type:     %s\n", d.ST)
		fmt.Printf("   Location: %s\n", d.Location)
		if !d.Complete() {
			fmt.Printf("   Note:     incomplete discovery, cannot be configured\n")
		}
		fmt.Println()
	}

	fmt.Println("Use 'igd-setup' or 'igd-setup setup' for the interactive wizard")
	fmt.Println("Use 'igd-setup add --unique-id <usn>' to configure directly")
	return nil
}

// setupCmd launches the interactive wizard
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Launch the interactive setup wizard",
	Long: `Launch the interactive setup wizard.

The wizard scans for unconfigured IGD routers, lets you pick one, and
creates a registry entry for it after confirmation.`,
	RunE: runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	handler, _, err := newHandler()
	if err != nil {
		return err
	}
	return tui.Run(handler)
}

// addCmd configures a router without the wizard
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Configure a router non-interactively",
	Long: `Scan for routers and create a registry entry without the wizard.

With --unique-id, the router with that USN is configured. Without it,
the command succeeds only when exactly one unconfigured router is found.`,
	Example: `  # Configure the only router on the network
  igd-setup add

  # Configure a specific router
  igd-setup add --unique-id "uuid:igd-1234::urn:schemas-upnp-org:device:InternetGatewayDevice:1"`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addUniqueID, "unique-id", "", "USN of the router to configure")
}

func runAdd(cmd *cobra.Command, args []string) error {
	handler, _, err := newHandler()
	if err != nil {
		return err
	}

	result, err := handler.StepUser(cmd.Context(), "")
	if err != nil {
		return err
	}
	if result.Type == flow.ResultAborted {
		fmt.Println(ui.RenderFailure(result.Reason.Message()))
		return nil
	}

	uniqueID := addUniqueID
	if uniqueID == "" {
		if len(result.Options) != 1 {
			fmt.Println(ui.RenderFailure(fmt.Sprintf(
				"Found %d unconfigured routers; pick one with --unique-id:", len(result.Options))))
			for _, opt := range result.Options {
				fmt.Printf("  %s  %s\n", opt.UniqueID, opt.Label)
			}
			return fmt.Errorf("ambiguous selection")
		}
		uniqueID = result.Options[0].UniqueID
	}

	result, err = handler.StepUser(cmd.Context(), uniqueID)
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

// watchCmd feeds pushed SSDP notifications through the discovery flow
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch for SSDP announcements and register routers",
	Long: `Listen passively for SSDP alive notifications from IGD routers.

Each notification runs through the discovery flow: already-configured
routers have their stored MAC and location refreshed, routers that
changed their UDN have their entry rewritten, and new routers prompt
for confirmation before an entry is created.`,
	Example: `  # Prompt for each newly seen router
  igd-setup watch

  # Register new routers without prompting
  igd-setup watch --auto-confirm`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&autoConfirm, "auto-confirm", false, "Create entries without prompting")
}

func runWatch(cmd *cobra.Command, args []string) error {
	registry, err := entries.Load()
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	monitor := ssdp.NewMonitor()
	monitor.FetchDescriptions = !noDescribe
	ch, err := monitor.Start()
	if err != nil {
		return err
	}
	defer monitor.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Watching for IGD announcements (Ctrl+C to stop)...")

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopped.")
			return nil

		case discovery, ok := <-ch:
			if !ok {
				return nil
			}
			if err := handleNotification(ctx, registry, discovery); err != nil {
				fmt.Println(ui.RenderFailure(err.Error()))
			}
		}
	}
}

// handleNotification runs one pushed discovery through a fresh flow
func handleNotification(ctx context.Context, registry *entries.Registry, discovery *ssdp.Discovery) error {
	fmt.Printf("\n%s\n", ui.RenderNeutral("Seen: "+discovery.String()))

	handler := flow.NewHandler(registry, nil, arp.Resolver{}, logReloader{})
	result, err := handler.StepSSDP(ctx, discovery)
	if err != nil {
		return err
	}

	if result.Type == flow.ResultForm {
		confirmed := autoConfirm
		if !confirmed {
			confirmed = promptYesNo(fmt.Sprintf("Configure %q?", result.Placeholder))
		}
		if result, err = handler.StepConfirm(ctx, confirmed); err != nil {
			return err
		}
	}

	printResult(result)
	return nil
}

// promptYesNo reads a y/n answer from stdin
func promptYesNo(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// printResult prints a flow outcome for non-wizard commands
func printResult(result *flow.Result) {
	switch result.Type {
	case flow.ResultCreated:
		fmt.Println(ui.RenderSuccess("Configured " + result.Entry.Title))
		fmt.Println(ui.RenderDetail("UDN", result.Entry.Data.UDN))
		fmt.Println(ui.RenderDetail("Type", result.Entry.Data.ST))
		fmt.Println(ui.RenderDetail("Location", result.Entry.Data.Location))
		if result.Entry.Data.MACAddress != "" {
			fmt.Println(ui.RenderDetail("MAC", result.Entry.Data.MACAddress))
		}

	case flow.ResultAborted:
		switch result.Reason {
		case flow.AbortEntryUpdated:
			fmt.Println(ui.RenderSuccess(result.Reason.Message()))
		default:
			fmt.Println(ui.RenderNeutral(result.Reason.Message()))
		}

	default:
		fmt.Println(ui.RenderNeutral(result.String()))
	}
}
