package installer

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
)

// CheckResult is one preflight probe outcome, shared by the doctor
// subcommand and the setup wizard's preflight screen.
type CheckResult struct {
	Name string
	OK   bool
	Err  error
}

// RunChecks probes the host without mutating it. Failures are warnings,
// not errors: the installer may still be able to proceed.
func RunChecks(p Paths) []CheckResult {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"supported OS", func() error {
			_, err := Detect(p)
			return err
		}},
		{"running as root", func() error {
			if os.Geteuid() != 0 {
				return fmt.Errorf("euid %d (a real install needs root)", os.Geteuid())
			}
			return nil
		}},
		{"git binary", func() error {
			_, err := exec.LookPath("git")
			return err
		}},
		{"curl binary", func() error {
			_, err := exec.LookPath("curl")
			return err
		}},
		{"config directory writable", func() error {
			return writableCheck(filepath.Dir(p.ConfigFile))
		}},
		{"log directory writable", func() error {
			return writableCheck(filepath.Dir(p.LogFile))
		}},
		{"disk space >= 5GiB on /", func() error {
			return diskCheck("/", 5)
		}},
		{"ports 80/443 free", func() error {
			out, err := exec.Command("ss", "-ltn").CombinedOutput()
			if err != nil {
				return err
			}
			s := string(out)
			if strings.Contains(s, ":80 ") || strings.Contains(s, ":443 ") {
				return fmt.Errorf("ports 80/443 already in use")
			}
			return nil
		}},
	}

	results := make([]CheckResult, 0, len(checks))
	for _, check := range checks {
		err := check.fn()
		results = append(results, CheckResult{Name: check.name, OK: err == nil, Err: err})
	}
	return results
}

// RunDoctor prints the check results in the [ OK ]/[WARN] style. It never
// returns an error: warnings are for the operator to weigh.
func RunDoctor(out io.Writer) error {
	fmt.Fprintln(out, "nexus-setup doctor")
	fmt.Fprintf(out, "runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	for _, r := range RunChecks(DefaultPaths()) {
		if r.OK {
			fmt.Fprintf(out, "[ OK ] %s\n", r.Name)
		} else {
			fmt.Fprintf(out, "[WARN] %s: %v\n", r.Name, r.Err)
		}
	}
	return nil
}

func writableCheck(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "nexus-setup-write-check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}

func diskCheck(path string, minGiB uint64) error {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return err
	}
	free := (stat.Bavail * uint64(stat.Bsize)) / (1024 * 1024 * 1024)
	if free < minGiB {
		return fmt.Errorf("free space %dGiB < %dGiB", free, minGiB)
	}
	return nil
}
