package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"autoscroll/pkg/config"
	"autoscroll/pkg/editor"
	"autoscroll/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage autoscroll configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (AUTOSCROLL_*)
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as '.autoscroll.yaml'
unless a different path is specified with the --config flag.`,
	Run: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the current configuration including values from all sources:
  - Command line flags
  - Environment variables
  - Configuration file
  - Default values`,
	Run: runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Scroll and checkpoint settings
  - Release feed settings
  - Log file accessibility`,
	Run: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

const exampleConfig = `# autoscroll configuration file
#
# Every option can also be set with an environment variable prefixed with
# AUTOSCROLL_, for example AUTOSCROLL_SCROLL_DELAY_MS=500.

scroll:
  # Milliseconds between scroll steps. Values below 50 are raised to 50.
  scroll_delay_ms: 1000

  # downOnly, upOnly or bidirectional
  scroll_direction: bidirectional

  # Lines moved per step
  scroll_step: 1

  # Lines to scroll before restarting or switching files. 0 is unlimited.
  max_scroll_lines: 0

  # Focus the next file after a completed cycle or an exhausted budget
  auto_switch_tabs: true

  # Resume after a pause once the document has been idle this long
  auto_resume: true
  idle_timeout_seconds: 30

checkpoint:
  # Type a temporary comment into the document every few lines
  enable_checkpoint_comments: false
  checkpoint_frequency_lines: 50
  checkpoint_duration_seconds: 3
  checkpoint_text: "// ---- auto-scroll checkpoint ----"

  # auto rewrites the comment marker for the file's language, none keeps it
  checkpoint_comment_style: auto

updates:
  enabled: true
  package: "autoscroll/autoscroll"
  feed_url: "https://api.github.com/repos/{package}/releases/latest"
  interval: 24h
  timeout: 10s

logging:
  # debug, info, warn, error or disabled
  level: info

  # The viewer always logs to a file; it defaults to autoscroll.log in the
  # data directory
  file: ""
`

func runConfigInit(cmd *cobra.Command, args []string) {
	// Determine config file path
	configPath := configFile
	if configPath == "" {
		configPath = ".autoscroll.yaml"
	}

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		fmt.Println("\nTo overwrite, first remove the existing file:")
		fmt.Printf("  rm %s\n", configPath)
		os.Exit(1)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		ui.PrintError("Failed to create configuration file", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	ui.Println("\nNext steps:")
	ui.Println("1. Adjust the scroll speed and direction")
	ui.Println("2. Run 'autoscroll config validate' to check the configuration")
	ui.Println("3. Start reading with 'autoscroll view <files>'")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		ui.PrintError("Failed to format configuration", err.Error())
		os.Exit(1)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Println()
	fmt.Print(string(data))

	source := configFile
	if source == "" {
		source = config.FindConfigFile()
	}
	if source == "" {
		source = "none found, using defaults and AUTOSCROLL_* variables"
	}
	fmt.Println()
	ui.PrintInfo("Loaded from", source)
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	if configFile == "" {
		configFile = config.FindConfigFile()
		if configFile == "" {
			ui.PrintError("No configuration file found", "Specify a file with --config flag")
			os.Exit(1)
		}
	}

	ui.PrintInfo("Validating configuration", configFile)

	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Configuration validation failed", err.Error())
		os.Exit(1)
	}

	warnings := []string{}
	errors := []string{}

	if cfg.Scroll.DelayMs < 50 {
		warnings = append(warnings, fmt.Sprintf("scroll_delay_ms %d is below the 50ms minimum and will be raised", cfg.Scroll.DelayMs))
	}
	if cfg.Checkpoint.Enabled && cfg.Checkpoint.FrequencyLines < cfg.Scroll.Step {
		warnings = append(warnings, "checkpoint frequency is smaller than the scroll step; a checkpoint is typed on every step")
	}
	if cfg.Checkpoint.CommentStyle == config.CommentStyleAuto {
		if adapted := editor.AdaptComment(cfg.Checkpoint.Text, "#"); adapted == cfg.Checkpoint.Text {
			warnings = append(warnings, "checkpoint text has no comment marker to adapt")
		}
	}

	if cfg.Logging.File != "" {
		dir := filepath.Dir(cfg.Logging.File)
		if err := os.MkdirAll(dir, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("Cannot create log directory: %v", err))
		}
	}

	// Display results
	if len(errors) > 0 {
		ui.PrintError("Configuration has errors:")
		for _, err := range errors {
			fmt.Printf("  - %s\n", err)
		}
		os.Exit(1)
	}

	if len(warnings) > 0 {
		ui.PrintWarning("Configuration warnings:")
		for _, warn := range warnings {
			fmt.Printf("  - %s\n", warn)
		}
		fmt.Println()
	}

	ui.PrintSuccess("Configuration is valid")

	ui.Println("\nConfiguration summary:")
	ui.Println(fmt.Sprintf("  Scroll: %s, %d line(s) every %dms", cfg.Scroll.Direction, cfg.Scroll.Step, cfg.Scroll.DelayMs))
	ui.Println(fmt.Sprintf("  Budget: %d lines (0 = unlimited), auto-switch %t", cfg.Scroll.MaxScrollLines, cfg.Scroll.AutoSwitchTabs))
	ui.Println(fmt.Sprintf("  Checkpoints: %t every %d lines", cfg.Checkpoint.Enabled, cfg.Checkpoint.FrequencyLines))
	ui.Println(fmt.Sprintf("  Updates: %t every %s", cfg.Updates.Enabled, cfg.Updates.Interval))
	ui.Println(fmt.Sprintf("  Log level: %s", cfg.Logging.Level))
}
