package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"autoscroll/pkg/logger"
	"autoscroll/pkg/release"
	"autoscroll/pkg/state"
	"autoscroll/pkg/ui"
)

var (
	notifyUpdate   bool
	dismissUpdate  bool
	resetDismissed bool
)

// checkUpdatesCmd represents the check-updates command
var checkUpdatesCmd = &cobra.Command{
	Use:   "check-updates",
	Short: "Check for a newer autoscroll release",
	Long: `Look up the latest autoscroll release on the configured feed and compare it
with the running version.

Unlike the background check in the viewer, this command always reports the
result, including failures and releases you dismissed earlier.`,
	Example: `  # Check now
  autoscroll check-updates

  # Check and raise a desktop notification when a release is available
  autoscroll check-updates --notify

  # Stop the viewer from offering the latest release
  autoscroll check-updates --dismiss`,
	Args: cobra.NoArgs,
	Run:  runCheckUpdates,
}

func init() {
	rootCmd.AddCommand(checkUpdatesCmd)

	checkUpdatesCmd.Flags().BoolVar(&notifyUpdate, "notify", false, "send a desktop notification when an update is available")
	checkUpdatesCmd.Flags().BoolVar(&dismissUpdate, "dismiss", false, "dismiss the latest release so the viewer stops offering it")
	checkUpdatesCmd.Flags().BoolVar(&resetDismissed, "reset-dismissed", false, "forget the dismissed release")
}

func runCheckUpdates(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}
	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logging", err.Error())
		os.Exit(1)
	}
	log := logger.GetLogger()

	stateManager, err := state.NewManager()
	if err != nil {
		ui.PrintError("Failed to open persistent state", err.Error())
		os.Exit(1)
	}

	if resetDismissed {
		if err := stateManager.Delete(state.KeyDismissedVersion); err != nil {
			ui.PrintError("Failed to reset dismissed release", err.Error())
			os.Exit(1)
		}
		ui.PrintSuccess("Dismissed release forgotten")
	}

	if cfg.Updates.FeedURL == "" {
		ui.PrintError("No release feed configured", "set updates.feed_url in the configuration file")
		os.Exit(1)
	}

	ui.PrintInfo("Checking for updates", cfg.Updates.Package)

	checker := release.New(&cfg.Updates, log)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Updates.Timeout)
	defer cancel()

	result, err := checker.Check(ctx, version)
	if err != nil {
		log.WithError(err).Error("Update check failed")
		ui.PrintError("Update check failed", err.Error())
		os.Exit(1)
	}

	ui.PrintInfo("Current version", result.Current)
	ui.PrintInfo("Latest version", result.Latest)

	if !result.Available {
		ui.PrintSuccess(fmt.Sprintf("autoscroll %s is up to date", result.Current))
		return
	}

	dismissed := stateManager.DismissedVersion()
	if !release.ShouldOffer(result, dismissed) {
		ui.PrintWarning("Update available but dismissed", result.Latest)
	} else {
		ui.PrintHighlight(fmt.Sprintf("Update available: %s", result.Latest))
	}

	if notifyUpdate {
		ui.NewNotifier().NotifyUpdate(result.Current, result.Latest)
	}

	if dismissUpdate {
		if err := stateManager.DismissVersion(result.Latest); err != nil {
			ui.PrintError("Failed to dismiss release", err.Error())
			os.Exit(1)
		}
		ui.PrintSuccess("Release " + result.Latest + " dismissed")
	}
}
