package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrDryRun is returned by Capture in dry-run mode: there is no real output
// to hand back, callers render a placeholder instead.
var ErrDryRun = errors.New("dry-run: command not executed")

// Runner is the single capability through which every stage touches the
// host. Stages never call os/exec or write files directly; routing all
// mutation through here is what makes --dry-run faithful by construction.
type Runner interface {
	// Shell runs the command line through bash, streaming combined output
	// to the console and the run log, and propagating the exit status.
	Shell(line string) error
	// Capture runs the command line and returns its combined output.
	Capture(line string) (string, error)
	// Attempt runs an advisory step: failure is logged as a warning and
	// swallowed, the run continues.
	Attempt(line string)
	// WriteFile replaces the file content wholesale (blind overwrite).
	WriteFile(path string, data []byte, mode fs.FileMode) error
	// MkdirAll creates a directory tree.
	MkdirAll(path string, mode fs.FileMode) error
	DryRun() bool
}

// NewRunner returns the host-mutating runner, or the recording dry runner.
func NewRunner(log *RunLog, dry bool) Runner {
	if dry {
		return &dryRunner{log: log}
	}
	return &hostRunner{log: log}
}

type hostRunner struct {
	log *RunLog
}

func (r *hostRunner) Shell(line string) error {
	r.log.Infof("run: %s", line)
	cmd := exec.Command("bash", "-c", line)
	out := r.log.Writer()
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command failed: %s: %w", line, err)
	}
	return nil
}

func (r *hostRunner) Capture(line string) (string, error) {
	r.log.Infof("query: %s", line)
	out, err := exec.Command("bash", "-c", line).CombinedOutput()
	return string(out), err
}

func (r *hostRunner) Attempt(line string) {
	if err := r.Shell(line); err != nil {
		r.log.Warnf("advisory step failed, continuing: %v", err)
	}
}

func (r *hostRunner) WriteFile(path string, data []byte, mode fs.FileMode) error {
	r.log.Infof("write: %s (%d bytes)", path, len(data))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, mode)
}

func (r *hostRunner) MkdirAll(path string, mode fs.FileMode) error {
	r.log.Infof("mkdir: %s", path)
	return os.MkdirAll(path, mode)
}

func (r *hostRunner) DryRun() bool { return false }

// dryRunner records the exact command lines and file writes a real run
// would perform, in the same order, and mutates nothing.
type dryRunner struct {
	log *RunLog
}

func (r *dryRunner) Shell(line string) error {
	r.log.Infof("dry-run, would run: %s", line)
	return nil
}

func (r *dryRunner) Capture(line string) (string, error) {
	r.log.Infof("dry-run, would query: %s", line)
	return "", ErrDryRun
}

func (r *dryRunner) Attempt(line string) {
	r.log.Infof("dry-run, would run (advisory): %s", line)
}

func (r *dryRunner) WriteFile(path string, data []byte, _ fs.FileMode) error {
	r.log.Infof("dry-run, would write: %s (%d bytes)", path, len(data))
	return nil
}

func (r *dryRunner) MkdirAll(path string, _ fs.FileMode) error {
	r.log.Infof("dry-run, would mkdir: %s", path)
	return nil
}

func (r *dryRunner) DryRun() bool { return true }
