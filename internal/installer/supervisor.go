package installer

import (
	"fmt"
	"path/filepath"
)

func supervisorStage() Stage {
	return Stage{
		Name: "supervisor",
		Enabled: func(st *State) bool {
			return st.Flags.Supervisor
		},
		Run: func(st *State) error {
			if err := st.Run.Shell(st.Sys.PkgInstall + " supervisor"); err != nil {
				return err
			}

			ext := ".conf"
			if st.Sys.Family == FamilyRHEL {
				ext = ".ini"
			}

			var programs []string
			for _, app := range st.supervisedApps() {
				name := "nexus-" + app.Name
				text, err := renderString(supervisorProgramTemplate, renderData{
					AppName: name,
					Command: app.Worker,
					AppDir:  st.Cfg.DirFor(app),
					WebUser: st.Sys.WebUser,
					Procs:   app.WorkerProcs,
					LogFile: "/var/log/supervisor/" + name + ".log",
				})
				if err != nil {
					return fmt.Errorf("render supervisor program %s: %w", name, err)
				}
				target := filepath.Join(st.Paths.SupervisorDir, name+ext)
				if err := st.Run.WriteFile(target, []byte(text), 0o644); err != nil {
					return err
				}
				programs = append(programs, name)
			}

			if err := st.Run.Shell("systemctl enable --now " + supervisorService(st.Sys.Family)); err != nil {
				return err
			}
			// Control calls are advisory: supervisord may need a moment,
			// and a failed start is recoverable by hand from the log.
			st.Run.Attempt("supervisorctl reread")
			st.Run.Attempt("supervisorctl update")
			for _, name := range programs {
				st.Run.Attempt("supervisorctl start " + name + ":*")
			}
			return nil
		},
	}
}

// supervisedApps filters the catalog down to apps with a worker command,
// honoring the subs-only supervisor restriction.
func (st *State) supervisedApps() []AppSpec {
	var out []AppSpec
	for _, app := range st.Apps {
		if app.Worker == "" {
			continue
		}
		if st.Flags.SupervisorSubsOnly && app.Name != "subs" {
			continue
		}
		if !st.appEnabled(app) {
			continue
		}
		out = append(out, app)
	}
	return out
}

func supervisorService(family PackageFamily) string {
	if family == FamilyRHEL {
		return "supervisord"
	}
	return "supervisor"
}
