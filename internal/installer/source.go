package installer

import (
	"fmt"
	"path/filepath"
	"strings"
)

func sourceCheckoutStage() Stage {
	return Stage{
		Name: "source-checkout",
		Enabled: func(st *State) bool {
			return len(st.EnabledApps()) > 0
		},
		Check: func(st *State) (bool, string) {
			for _, app := range st.EnabledApps() {
				if !dirExists(filepath.Join(st.Cfg.DirFor(app), ".git")) {
					return false, ""
				}
			}
			return true, "all sources already checked out"
		},
		Run: func(st *State) error {
			for _, app := range st.EnabledApps() {
				dest := st.Cfg.DirFor(app)
				if dirExists(filepath.Join(dest, ".git")) {
					st.Log.Infof("%s already checked out at %s", app.Name, dest)
					continue
				}
				repo := st.Cfg.RepoFor(app)
				parent := filepath.Dir(dest)
				cloneDir := filepath.Join(parent, repoBaseName(repo))
				if err := st.Run.MkdirAll(parent, 0o755); err != nil {
					return err
				}
				clone := fmt.Sprintf("git clone --branch %s %s %s",
					st.Cfg.AppBranch, shellQuote(repo), cloneDir)
				if err := st.Run.Shell(clone); err != nil {
					return err
				}
				if cloneDir != dest {
					if err := st.Run.Shell(fmt.Sprintf("mv %s %s", cloneDir, dest)); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}

func repoBaseName(repo string) string {
	return filepath.Base(strings.TrimSuffix(strings.TrimSuffix(repo, "/"), ".git"))
}
