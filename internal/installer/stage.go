package installer

import (
	"fmt"
	"path/filepath"
)

// Policy is a stage's declared failure policy. Essential failures abort
// the whole run; advisory failures are logged and the run continues.
type Policy int

const (
	Essential Policy = iota
	Advisory
)

// Stage is one named unit of work in the pipeline: an enablement
// predicate over the profile flags, an idempotency check ("already
// satisfied?"), and the action itself. Stages form a strict total order;
// none depends on a later stage's output.
type Stage struct {
	Name    string
	Enabled func(st *State) bool
	Check   func(st *State) (satisfied bool, reason string)
	Run     func(st *State) error
	Policy  Policy
}

// SkippedStage records why a stage did not run, for the summary report.
type SkippedStage struct {
	Name   string
	Reason string
}

// State is everything a stage may touch: the immutable configuration
// record and flag set, the detected host identity, and the runner all
// mutation goes through. Stages never read ambient globals.
type State struct {
	Cfg   *Config
	Flags StageFlags
	Sys   SysInfo
	Run   Runner
	Log   *RunLog
	Paths Paths
	Apps  []AppSpec

	Skipped []SkippedStage

	phpSocket string
}

// EnabledApps returns the catalog entries switched on by the flag set, in
// catalog order.
func (st *State) EnabledApps() []AppSpec {
	var out []AppSpec
	for _, app := range st.Apps {
		if st.appEnabled(app) {
			out = append(out, app)
		}
	}
	return out
}

func (st *State) appEnabled(app AppSpec) bool {
	if app.Name == "subs" {
		return st.Flags.Subs
	}
	return st.Flags.App
}

// appMigrates reports whether the named catalog entry owns database
// migrations. A fork's apps.yml can switch this off.
func (st *State) appMigrates(name string) bool {
	for _, app := range st.Apps {
		if app.Name == name {
			return app.Migrate
		}
	}
	return false
}

// PHPSocket probes for the PHP-FPM unix socket once and caches the
// answer. Before the PHP packages are installed (and in dry-run) nothing
// is there yet, so fall back to the conventional path.
func (st *State) PHPSocket() string {
	if st.phpSocket != "" {
		return st.phpSocket
	}
	matches, _ := filepath.Glob(filepath.Join(st.Paths.PHPRunDir, "php*-fpm.sock"))
	if len(matches) > 0 {
		st.phpSocket = matches[len(matches)-1]
	} else {
		st.phpSocket = filepath.Join(st.Paths.PHPRunDir, "php-fpm.sock")
	}
	return st.phpSocket
}

// RunPipeline walks the stages in order. Disabled and already-satisfied
// stages are logged and recorded as skipped; an essential failure aborts
// immediately, leaving the run log as the diagnostic record. There are no
// automatic retries: re-running the installer is the retry mechanism.
func RunPipeline(st *State, stages []Stage) error {
	for _, sg := range stages {
		if sg.Enabled != nil && !sg.Enabled(st) {
			st.Log.Infof("skip %s: disabled by profile %q", sg.Name, st.Cfg.Profile)
			st.Skipped = append(st.Skipped, SkippedStage{Name: sg.Name, Reason: "disabled by profile"})
			continue
		}
		if sg.Check != nil {
			if ok, reason := sg.Check(st); ok {
				st.Log.Infof("skip %s: %s", sg.Name, reason)
				st.Skipped = append(st.Skipped, SkippedStage{Name: sg.Name, Reason: reason})
				continue
			}
		}
		st.Log.Infof("=== stage %s ===", sg.Name)
		if err := sg.Run(st); err != nil {
			if sg.Policy == Advisory {
				st.Log.Warnf("stage %s failed (advisory), continuing: %v", sg.Name, err)
				continue
			}
			st.Log.Errorf("stage %s failed: %v", sg.Name, err)
			return fmt.Errorf("stage %s: %w", sg.Name, err)
		}
	}
	return nil
}

// appendLineUnique appends the line to the file only when an exact match
// is not already present. The read is direct, the write goes through the
// runner.
func appendLineUnique(st *State, path, line string) error {
	if fileContainsLine(path, line) {
		return nil
	}
	return st.Run.Shell(fmt.Sprintf("echo %s >> %s", shellQuote(line), path))
}
