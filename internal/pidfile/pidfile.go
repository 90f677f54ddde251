// Package pidfile creates and probes pid marker files. A marker file
// signals that a particular command invocation is running so external
// tooling, or a second invocation of the same command, can detect it.
// It is not an OS-enforced lock: distinct processes get distinct file
// names and nothing here refuses to run when a marker already exists.
package pidfile

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/pidbase/pidctl/internal/output"
)

// Manager creates pid marker files and answers existence probes. Build one
// per command invocation: the probe throttle is a field of the Manager, not
// process-wide state, so a fresh run always starts with a cold cache.
type Manager struct {
	out *output.Output

	// capabilities, replaceable in tests
	now     func() time.Time
	pid     func() int // <= 0 means no process identifier is obtainable
	randInt func() int // positive random fallback identity

	lastCheck time.Time
}

func NewManager(out *output.Output) *Manager {
	return &Manager{
		out: out,
		now: time.Now,
		pid: os.Getpid,
		randInt: func() int {
			return rand.IntN(math.MaxInt32-1) + 1
		},
	}
}

// CreateError reports a failed pid marker creation. It carries the fixed
// diagnostic lines for the user; translating the failure into a process
// exit is the command driver's job, never this package's.
type CreateError struct {
	Path string
	Err  error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("unable to create pid file %s: %v", e.Path, e.Err)
}

func (e *CreateError) Unwrap() error {
	return e.Err
}

// Diagnostics returns the messages to show the user, in order.
func (e *CreateError) Diagnostics() []string {
	return []string{
		fmt.Sprintf("Unable to create pid file %s", e.Path),
		"Please be sure pid file can be created in this location.",
		"Command stopped!",
	}
}

// Create writes a pid marker file named {prefix}{token}.pid under dir and
// returns the absolute path used. The token is pid_<N> when a process
// identifier is obtainable and rnd_<N> otherwise. A missing directory is
// created best-effort first; any failure to produce the file surfaces as a
// *CreateError. The marker is never mutated or deleted afterwards.
func (m *Manager) Create(dir string, prefix string) (string, error) {
	token := m.token()
	path := filepath.Join(dir, prefix+token+".pid")

	// A failure here folds into the open below: the open error is the one
	// worth reporting.
	_ = os.MkdirAll(dir, 0o777)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o666)
	if err != nil {
		return "", &CreateError{Path: path, Err: err}
	}
	_, werr := f.WriteString(token)
	cerr := f.Close()
	if werr != nil {
		return "", &CreateError{Path: path, Err: werr}
	}
	if cerr != nil {
		return "", &CreateError{Path: path, Err: cerr}
	}

	if abs, aerr := filepath.Abs(path); aerr == nil {
		path = abs
	}
	m.out.WriteVVV(fmt.Sprintf("Created pid file %s", path))
	return path, nil
}

func (m *Manager) token() string {
	if pid := m.pid(); pid > 0 {
		return fmt.Sprintf("pid_%d", pid)
	}
	m.out.WriteVV("Process id is not available, using a random value instead")
	return fmt.Sprintf("rnd_%d", m.randInt())
}

// Exists reports whether the marker file is present. Callers poll this once
// per work unit to detect cooperative cancellation (stop by deleting the
// marker), so unforced probes within one second of the last real check
// return a cached true without touching the filesystem. A forced probe
// always hits the filesystem. The last-check timestamp advances on every
// real probe regardless of the result.
//
// Any stat failure counts as absent, including a permission error on the
// containing directory: a marker that cannot be read cannot prove the
// invocation is still registered, and stopping is the safe answer for a
// cancellation poll.
func (m *Manager) Exists(path string, force bool) bool {
	now := m.now()
	if !force && !m.lastCheck.IsZero() && now.Sub(m.lastCheck) < time.Second {
		return true
	}
	m.lastCheck = now

	_, err := os.Stat(path)
	m.out.WriteVVV(fmt.Sprintf("Checked pid file %s", path))
	return err == nil
}
