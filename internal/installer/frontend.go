package installer

import "fmt"

func frontendStage() Stage {
	return Stage{
		Name: "frontend",
		Enabled: func(st *State) bool {
			if !st.Flags.App {
				return false
			}
			for _, app := range st.Apps {
				if app.Name == "nexus" {
					return app.Frontend
				}
			}
			return false
		},
		Run: func(st *State) error {
			dir := st.Cfg.AppDir
			if err := st.Run.Shell(fmt.Sprintf("cd %s && npm ci", dir)); err != nil {
				return err
			}
			return st.Run.Shell(fmt.Sprintf("cd %s && npm run build", dir))
		},
	}
}
