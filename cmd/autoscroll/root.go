package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"autoscroll/pkg/ui"
)

var (
	// Version information, set with -ldflags at build time
	version   = "0.3.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	logFile    string
	noColor    bool
	quiet      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "autoscroll [files...]",
	Short: "Hands-free reader that scrolls source files for you",
	Long: `autoscroll opens source files in a terminal viewer and scrolls them line by
line at a steady pace, so you can read code without touching the keyboard.

Features:
  - Down-only, up-only and bidirectional scrolling
  - Automatic pause when you click or edit, with idle auto-resume
  - Scroll budgets and automatic switching to the next file
  - Checkpoint comments typed into the document as reading markers
  - Syntax highlighting for hundreds of languages
  - Release checks with dismissible update offers`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.SetNoColor(noColor)

		// Set quiet mode if requested or log level is error
		if quiet || logLevel == "error" {
			ui.SetQuietMode(true)
		}

		// The viewer owns the screen; other commands get the banner
		switch cmd.Name() {
		case "version", "help", "completion", "view", "autoscroll":
		default:
			ui.PrintLogo()
		}
	},
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		runView(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $HOME/.config/autoscroll/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")

	addScrollFlags(rootCmd)

	// Version template
	rootCmd.SetVersionTemplate(`autoscroll {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
