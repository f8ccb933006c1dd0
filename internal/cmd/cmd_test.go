package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"text/tabwriter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repository: /srv/backups\nrestic_binary: /usr/bin/restic\n"), 0o600))

	t.Setenv("RESTIC_REPOSITORY", "")
	defer func() {
		flagConfig, flagRepo, flagRestic = "", "", ""
	}()

	flagConfig = path
	flagRepo = ""
	flagRestic = ""
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/srv/backups", cfg.Repository)
	assert.Equal(t, "/usr/bin/restic", cfg.ResticBinary)

	// Flags win over the file.
	flagRepo = "sftp:backup:/repo"
	flagRestic = "restic2"
	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sftp:backup:/repo", cfg.Repository)
	assert.Equal(t, "restic2", cfg.ResticBinary)
}

func TestWriteRow(t *testing.T) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	writeRow(w, "ID", "TIME")
	writeRow(w, "abc123", "2024-01-15 09:00")
	require.NoError(t, w.Flush())

	assert.Contains(t, buf.String(), "abc123")
	assert.Contains(t, buf.String(), "ID")
}
