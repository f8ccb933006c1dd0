package restic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/google/uuid"
)

// stderrTailLines is how many trailing stderr lines are folded into error
// messages. restic prints progress noise before the actual failure reason.
const stderrTailLines = 3

// Client invokes the restic binary against a single repository.
//
// Methods are safe to call from background goroutines: the client holds no
// mutable state after construction, and slog handlers serialize writes.
type Client struct {
	bin  string
	repo string
	env  []string
	log  *slog.Logger
}

// Options configures a Client.
type Options struct {
	// Binary is the restic executable to run (default "restic").
	Binary string

	// Repository is the repository location (required).
	Repository string

	// PasswordFile, if set, is exported as RESTIC_PASSWORD_FILE.
	PasswordFile string

	// PasswordCommand, if set, is run once at construction and its stdout
	// (trimmed) exported as RESTIC_PASSWORD. The value is split with shell
	// quoting rules but never run through a shell.
	PasswordCommand string

	// Logger receives one structured record per invocation. nil disables.
	Logger *slog.Logger
}

// NewClient builds a Client, resolving the password command if configured.
func NewClient(opts Options) (*Client, error) {
	if opts.Repository == "" {
		return nil, fmt.Errorf("repository not configured")
	}

	bin := opts.Binary
	if bin == "" {
		bin = "restic"
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	env := os.Environ()
	if opts.PasswordFile != "" {
		env = append(env, "RESTIC_PASSWORD_FILE="+opts.PasswordFile)
	}
	if opts.PasswordCommand != "" && os.Getenv("RESTIC_PASSWORD") == "" {
		password, err := runPasswordCommand(opts.PasswordCommand)
		if err != nil {
			return nil, fmt.Errorf("password_command: %w", err)
		}
		env = append(env, "RESTIC_PASSWORD="+password)
	}

	return &Client{
		bin:  bin,
		repo: opts.Repository,
		env:  env,
		log:  logger,
	}, nil
}

// runPasswordCommand executes the configured password command and returns
// its trimmed stdout.
func runPasswordCommand(command string) (string, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}
	if len(argv) == 0 {
		return "", fmt.Errorf("empty command")
	}

	out, err := exec.Command(argv[0], argv[1:]...).Output()
	if err != nil {
		return "", fmt.Errorf("run %q: %w", argv[0], err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ListSnapshots returns all snapshots in the repository, newest first.
func (c *Client) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	out, err := c.run(ctx, "snapshots")
	if err != nil {
		return nil, err
	}

	snapshots, err := parseSnapshots(out)
	if err != nil {
		return nil, fmt.Errorf("parse snapshots: %w", err)
	}
	return snapshots, nil
}

// ListEntries returns the direct children of dir inside the given snapshot,
// directories first, each group case-insensitive by name.
func (c *Client) ListEntries(ctx context.Context, snapshotID, dir string) ([]Entry, error) {
	out, err := c.run(ctx, "ls", snapshotID, dir)
	if err != nil {
		return nil, err
	}
	return parseEntries(out, dir), nil
}

// Restore restores sourcePath from the snapshot into targetDir.
func (c *Client) Restore(ctx context.Context, snapshotID, sourcePath, targetDir string) error {
	_, err := c.run(ctx, "restore", snapshotID, "--include", sourcePath, "--target", targetDir)
	return err
}

// run executes restic with the repository and --json flags, returning
// stdout. Failures carry the tail of stderr as the message.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	full := append([]string{"--repo", c.repo, "--json"}, args...)
	cmd := exec.CommandContext(ctx, c.bin, full...)
	cmd.Env = c.env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	opID := uuid.NewString()
	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		reason := stderrTail(stderr.Bytes())
		if reason == "" {
			reason = err.Error()
		}
		c.log.Error("restic command failed",
			"op_id", opID,
			"args", strings.Join(args, " "),
			"duration_ms", elapsed.Milliseconds(),
			"stderr", reason,
		)
		return nil, fmt.Errorf("restic %s: %s", args[0], reason)
	}

	c.log.Info("restic command ok",
		"op_id", opID,
		"args", strings.Join(args, " "),
		"duration_ms", elapsed.Milliseconds(),
		"stdout_bytes", stdout.Len(),
	)
	return stdout.Bytes(), nil
}

// parseSnapshots decodes the `snapshots --json` array and orders it newest
// first.
func parseSnapshots(out []byte) ([]Snapshot, error) {
	var snapshots []Snapshot
	if err := json.Unmarshal(out, &snapshots); err != nil {
		return nil, err
	}
	SortSnapshots(snapshots)
	return snapshots, nil
}

// parseEntries decodes the NDJSON stream from `ls --json`, keeping only the
// direct children of dir. Lines that fail to decode (status objects,
// progress noise) are dropped rather than failing the listing.
func parseEntries(out []byte, dir string) []Entry {
	entries := make([]Entry, 0, 64)
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		if e.Name == "" || e.Path == "" {
			continue
		}
		if e.Path == dir || !isDirectChild(e.Path, dir) {
			continue
		}
		entries = append(entries, e)
	}
	SortEntries(entries)
	return entries
}

// stderrTail returns the last few non-empty stderr lines as one string.
func stderrTail(b []byte) string {
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	keep := make([]string, 0, stderrTailLines)
	for i := len(lines) - 1; i >= 0 && len(keep) < stderrTailLines; i-- {
		if s := strings.TrimSpace(lines[i]); s != "" {
			keep = append([]string{s}, keep...)
		}
	}
	return strings.Join(keep, " | ")
}
