package installer

import (
	"fmt"
	"io"
	"strings"
)

// Report is the end-of-run summary. It is assembled only after every
// stage has completed or been skipped, and rendering it must never fail
// the run: unavailable subsystems show a placeholder, not an error.
type Report struct {
	Profile          string
	AppDir           string
	SubsDir          string
	DBTarget         string
	UseRedis         bool
	EnableSSL        bool
	EnableSwap       bool
	SupervisorStatus string
	NginxValid       string
	Skipped          []SkippedStage
	LogFile          string
	Failed           string
}

const placeholderUnavailable = "unavailable"
const placeholderDryRun = "n/a (dry-run)"

// BuildReport collects final system state. Queries go through the runner:
// in dry-run they are simulated, and a struggling subsystem degrades to a
// placeholder.
func BuildReport(st *State, runErr error) Report {
	r := Report{
		Profile:    st.Cfg.Profile,
		AppDir:     st.Cfg.AppDir,
		SubsDir:    st.Cfg.SubsDir,
		UseRedis:   st.Cfg.UseRedis,
		EnableSSL:  st.Cfg.EnableSSL,
		EnableSwap: st.Cfg.EnableSwap,
		Skipped:    st.Skipped,
		LogFile:    st.Paths.LogFile,
	}
	if runErr != nil {
		r.Failed = runErr.Error()
	}

	if st.Cfg.RemoteDB() {
		r.DBTarget = fmt.Sprintf("remote (%s on %s:%d)", st.Cfg.DBName, st.Cfg.DBHost, st.Cfg.DBPort)
	} else {
		r.DBTarget = fmt.Sprintf("local (%s on %s:%d)", st.Cfg.DBName, st.Cfg.DBHost, st.Cfg.DBPort)
	}

	r.SupervisorStatus = placeholderUnavailable
	if st.Flags.Supervisor {
		out, err := st.Run.Capture("supervisorctl status")
		switch {
		case err == ErrDryRun:
			r.SupervisorStatus = placeholderDryRun
		case err != nil:
			r.SupervisorStatus = placeholderUnavailable
		default:
			r.SupervisorStatus = strings.TrimSpace(out)
		}
	}

	r.NginxValid = placeholderUnavailable
	if st.Flags.WebServer {
		_, err := st.Run.Capture("nginx -t")
		switch {
		case err == ErrDryRun:
			r.NginxValid = placeholderDryRun
		case err != nil:
			r.NginxValid = "invalid"
		default:
			r.NginxValid = "ok"
		}
	}
	return r
}

// Render prints the fixed-order summary block.
func (r Report) Render(w io.Writer) {
	line := strings.Repeat("=", 60)
	fmt.Fprintln(w, line)
	if r.Failed != "" {
		fmt.Fprintln(w, "nexus-setup: run aborted")
		fmt.Fprintf(w, "  failure:          %s\n", r.Failed)
	} else {
		fmt.Fprintln(w, "nexus-setup: run complete")
	}
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "  profile:          %s\n", r.Profile)
	fmt.Fprintf(w, "  nexus path:       %s\n", r.AppDir)
	fmt.Fprintf(w, "  subs path:        %s\n", r.SubsDir)
	fmt.Fprintf(w, "  database:         %s\n", r.DBTarget)
	fmt.Fprintf(w, "  redis:            %s\n", onOff(r.UseRedis))
	fmt.Fprintf(w, "  ssl:              %s\n", onOff(r.EnableSSL))
	fmt.Fprintf(w, "  swap:             %s\n", onOff(r.EnableSwap))
	fmt.Fprintf(w, "  nginx config:     %s\n", r.NginxValid)
	fmt.Fprintf(w, "  supervised jobs:  %s\n", indentBlock(r.SupervisorStatus, 20))
	if len(r.Skipped) > 0 {
		fmt.Fprintln(w, "  skipped stages:")
		for _, s := range r.Skipped {
			fmt.Fprintf(w, "    - %-18s %s\n", s.Name, s.Reason)
		}
	}
	fmt.Fprintf(w, "  log file:         %s\n", r.LogFile)
	fmt.Fprintln(w, line)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func indentBlock(s string, indent int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= 1 {
		return s
	}
	pad := "\n" + strings.Repeat(" ", indent)
	return strings.Join(lines, pad)
}
