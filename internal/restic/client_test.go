package restic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSnapshots(t *testing.T) {
	out := []byte(`[
		{"id":"abc123ff","short_id":"abc123","time":"2026-01-01T10:00:00Z","paths":["/home"],"hostname":"web1","username":"ops","tags":["nightly"]},
		{"id":"def456ff","short_id":"def456","time":"2026-01-02T10:00:00Z","paths":["/home"],"hostname":"web1","username":"ops","tags":[]}
	]`)

	snaps, err := parseSnapshots(out)
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	// Newest first.
	assert.Equal(t, "def456", snaps[0].ShortID)
	assert.Equal(t, "abc123", snaps[1].ShortID)
	assert.Equal(t, "web1", snaps[1].Hostname)
	assert.Equal(t, []string{"nightly"}, snaps[1].Tags)
}

func TestParseSnapshotsMalformed(t *testing.T) {
	_, err := parseSnapshots([]byte(`{"not":"an array"}`))
	assert.Error(t, err)
}

func TestParseEntriesDirectChildrenOnly(t *testing.T) {
	out := []byte(`
{"message_type":"snapshot","snapshot":"def456"}
{"name":"home","type":"dir","path":"/home"}
{"name":"notes.txt","type":"file","path":"/home/notes.txt","size":512}
{"name":"docs","type":"dir","path":"/home/docs"}
{"name":"deep.txt","type":"file","path":"/home/docs/deep.txt","size":64}
not json at all
`)

	entries := parseEntries(out, "/home")
	require.Len(t, entries, 2)

	// Directories before files; the root itself and deeper descendants are
	// excluded, as are undecodable lines.
	assert.Equal(t, "docs", entries[0].Name)
	assert.True(t, entries[0].IsDir())
	assert.Equal(t, "notes.txt", entries[1].Name)
	require.NotNil(t, entries[1].Size)
	assert.Equal(t, int64(512), *entries[1].Size)
}

func TestParseEntriesEmptyOutput(t *testing.T) {
	assert.Empty(t, parseEntries(nil, "/home"))
	assert.Empty(t, parseEntries([]byte("\n\n"), "/home"))
}

func TestStderrTail(t *testing.T) {
	b := []byte("opening repository\n\nFatal: wrong password or no key found\n")
	assert.Equal(t, "opening repository | Fatal: wrong password or no key found", stderrTail(b))
	assert.Equal(t, "", stderrTail(nil))
}

func TestNewClientRequiresRepository(t *testing.T) {
	_, err := NewClient(Options{})
	assert.Error(t, err)

	c, err := NewClient(Options{Repository: "rest:https://backup/repo"})
	require.NoError(t, err)
	assert.Equal(t, "restic", c.bin)
	assert.Equal(t, "rest:https://backup/repo", c.repo)
}

func TestRunPasswordCommand(t *testing.T) {
	pw, err := runPasswordCommand(`echo "s3cret"`)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)

	_, err = runPasswordCommand("")
	assert.Error(t, err)

	_, err = runPasswordCommand(`echo "unterminated`)
	assert.Error(t, err)
}
