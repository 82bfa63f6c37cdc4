package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"autoscroll/pkg/config"
	"autoscroll/pkg/editor"
	"autoscroll/pkg/logger"
	"autoscroll/pkg/release"
	"autoscroll/pkg/scroller"
	"autoscroll/pkg/state"
	"autoscroll/pkg/ui"
	"autoscroll/pkg/ui/tui"
)

var (
	// Scroll flags
	scrollDelay     int
	scrollDirection string
	scrollStep      int
	maxLines        int
	autoSwitch      bool
	checkpoints     bool
	updateChecks    bool
	colorStyle      string
)

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view <files...>",
	Short: "Open files in the auto-scrolling viewer",
	Long: `Open one or more files in the terminal viewer. Press s to start scrolling
from the caret line.

Scrolling pauses when you click into the document or edit it, and resumes on
its own after the configured idle timeout. Settings are read again every time
scrolling starts, so edits to the configuration file apply on the next start.`,
	Example: `  # Read a file with the default settings
  autoscroll view main.go

  # Scroll down only, two lines every half second, across several files
  autoscroll view --direction downOnly --step 2 --delay 500 *.go

  # Type checkpoint comments while reading
  autoscroll view --checkpoints server.py`,
	Args: cobra.MinimumNArgs(1),
	Run:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	addScrollFlags(viewCmd)
}

func addScrollFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&scrollDelay, "delay", 0, "milliseconds between scroll steps")
	cmd.Flags().StringVar(&scrollDirection, "direction", "", "scroll direction (downOnly, upOnly, bidirectional)")
	cmd.Flags().IntVar(&scrollStep, "step", 0, "lines per scroll step")
	cmd.Flags().IntVar(&maxLines, "max-lines", 0, "lines to scroll before restarting or switching files (0 = unlimited)")
	cmd.Flags().BoolVar(&autoSwitch, "auto-switch", true, "switch to the next file after a cycle or budget")
	cmd.Flags().BoolVar(&checkpoints, "checkpoints", false, "type checkpoint comments while scrolling")
	cmd.Flags().BoolVar(&updateChecks, "updates", true, "check for new releases in the background")
	cmd.Flags().StringVar(&colorStyle, "style", "", "syntax highlighting style (chroma style name)")
}

// commandFlags collects the flags the user set explicitly
func commandFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	if logLevel != "" {
		flags["log-level"] = logLevel
	}
	if logFile != "" {
		flags["log-file"] = logFile
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("delay") {
		flags["delay"] = scrollDelay
	}
	if changed("direction") {
		flags["direction"] = scrollDirection
	}
	if changed("step") {
		flags["step"] = scrollStep
	}
	if changed("max-lines") {
		flags["max-lines"] = maxLines
	}
	if changed("auto-switch") {
		flags["auto-switch"] = autoSwitch
	}
	if changed("checkpoints") {
		flags["checkpoints"] = checkpoints
	}
	if changed("updates") {
		flags["updates"] = updateChecks
	}
	return flags
}

// loadConfig loads configuration with the command's flags applied
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(configFile, commandFlags(cmd))
}

func runView(cmd *cobra.Command, args []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		ui.PrintError("The viewer needs an interactive terminal")
		os.Exit(1)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	// The viewer owns the terminal, so logs always go to a file
	if cfg.Logging.File == "" {
		dataDir, err := config.DataDirectory()
		if err != nil {
			ui.PrintError("Failed to prepare data directory", err.Error())
			os.Exit(1)
		}
		cfg.Logging.File = filepath.Join(dataDir, "autoscroll.log")
	}
	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logging", err.Error())
		os.Exit(1)
	}
	log := logger.GetLogger()
	log.WithField("version", version).Info("autoscroll starting")

	host := editor.NewMemoryHost()
	var first string
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			ui.PrintError("Failed to open file", err.Error())
			os.Exit(1)
		}
		content := strings.ReplaceAll(string(data), "\r\n", "\n")
		id := host.Open(filepath.Base(path), strings.TrimSuffix(content, "\n"))
		if first == "" {
			first = id
		}
	}
	_ = host.Focus(first)

	// Settings are reloaded on every start so config edits apply without a restart
	current := cfg
	settings := func() scroller.Settings {
		fresh, err := loadConfig(cmd)
		if err != nil {
			log.WithError(err).Warn("Failed to reload configuration, keeping previous settings")
			return scroller.SettingsFromConfig(current)
		}
		current = fresh
		return scroller.SettingsFromConfig(current)
	}

	engine := scroller.New(scroller.Options{
		Host:     host,
		Settings: settings,
		Logger:   log,
		CommentToken: func(doc editor.DocumentInfo) string {
			view, ok := host.Document(doc.ID)
			if !ok {
				return editor.CommentToken(doc.Name, nil)
			}
			return editor.CommentToken(doc.Name, []byte(strings.Join(view.Lines, "\n")))
		},
	})
	defer engine.Stop()

	stateManager, err := state.NewManager()
	if err != nil {
		log.WithError(err).Warn("Persistent state unavailable, dismissed updates will be forgotten")
		stateManager = state.NewManagerWithStores(state.NewMemoryStore())
	}

	opts := tui.Options{
		Host:         host,
		Scroller:     engine,
		State:        stateManager,
		Version:      version,
		CheckTimeout: cfg.Updates.Timeout,
		Style:        colorStyle,
	}
	var background tui.BackgroundChecker
	if cfg.Updates.Enabled {
		checker := release.New(&cfg.Updates, log)
		opts.Updates = checker
		background = checker
	}

	terminal := tui.NewTUI(opts, background, cfg.Updates.Interval)
	if err := terminal.Start(); err != nil {
		log.WithError(err).Error("TUI failed")
		ui.PrintError("Viewer failed", fmt.Sprintf("%v", err))
		os.Exit(1)
	}
	log.Info("autoscroll exiting")
}
