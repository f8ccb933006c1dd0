package cmd

import (
	"context"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runger/snapview/internal/logging"
	"github.com/runger/snapview/internal/restic"
)

// snapshotsCmd lists repository snapshots without starting the UI. Useful
// for scripts and for checking repository access before browsing.
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List snapshots in the repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		client, err := restic.NewClient(restic.Options{
			Binary:          cfg.ResticBinary,
			Repository:      cfg.Repository,
			PasswordFile:    cfg.PasswordFile,
			PasswordCommand: cfg.PasswordCommand,
			Logger:          logging.Discard(),
		})
		if err != nil {
			return err
		}

		snapshots, err := client.ListSnapshots(context.Background())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		defer w.Flush()
		writeRow(w, "ID", "TIME", "HOST", "PATHS", "TAGS")
		for _, s := range snapshots {
			writeRow(w, s.DisplayID(), s.FormattedTime(), s.Hostname,
				strings.Join(s.Paths, ","), strings.Join(s.Tags, ","))
		}
		return nil
	},
}

func writeRow(w *tabwriter.Writer, cols ...string) {
	w.Write([]byte(strings.Join(cols, "\t") + "\n"))
}
