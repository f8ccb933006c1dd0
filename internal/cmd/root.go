// Package cmd implements the snapview command-line interface.
package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/runger/snapview/internal/browse"
	"github.com/runger/snapview/internal/config"
	"github.com/runger/snapview/internal/logging"
	"github.com/runger/snapview/internal/restic"
)

var (
	flagConfig  string
	flagRepo    string
	flagRestic  string
	flagLogFile string
)

var rootCmd = &cobra.Command{
	Use:   "snapview",
	Short: "terminal browser for restic snapshots",
	Long: `snapview - browse restic snapshots and restore files from a terminal UI

Repository access uses the standard restic environment variables
(RESTIC_REPOSITORY, RESTIC_PASSWORD, RESTIC_PASSWORD_FILE,
RESTIC_PASSWORD_COMMAND) or a config file at
~/.config/snapview/config.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "snapview: %v\n", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.config/snapview/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagRepo, "repo", "", "repository location (overrides config and RESTIC_REPOSITORY)")
	rootCmd.PersistentFlags().StringVar(&flagRestic, "restic", "", "restic binary to invoke")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "write a JSON-lines operation log to this file")

	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file, then overlays command-line flags on top
// of the file and environment values.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flagConfig != "" {
		cfg, err = config.LoadFromFile(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if flagRepo != "" {
		cfg.Repository = flagRepo
	}
	if flagRestic != "" {
		cfg.ResticBinary = flagRestic
	}
	return cfg, nil
}

func runTUI() error {
	// The UI owns the terminal, so refuse to start anywhere it cannot
	// actually render.
	if err := checkTTY(); err != nil {
		return err
	}
	if err := checkTERM(); err != nil {
		return err
	}
	if err := checkTermWidth(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.Discard()
	logPath := flagLogFile
	if logPath == "" {
		logPath = cfg.Log.File
	}
	if logPath != "" {
		l, f, err := logging.Open(logPath, cfg.Log.Level)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = l
	}

	client, err := restic.NewClient(restic.Options{
		Binary:          cfg.ResticBinary,
		Repository:      cfg.Repository,
		PasswordFile:    cfg.PasswordFile,
		PasswordCommand: cfg.PasswordCommand,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	downloadDir := cfg.Download.DefaultDir
	if downloadDir == "" {
		if wd, err := os.Getwd(); err == nil {
			downloadDir = wd
		} else {
			downloadDir = string(os.PathSeparator)
		}
	}

	// Run the TUI on /dev/tty so stdout stays clean for shell pipelines.
	tty, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", ttyPath, err)
	}
	defer tty.Close()

	// Detect the color profile from the real tty. SetColorProfile modifies
	// the default renderer in-place so package-level styles pick it up.
	lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())

	p := tea.NewProgram(browse.New(client, downloadDir),
		tea.WithAltScreen(),
		tea.WithInput(tty),
		tea.WithOutput(tty),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}
