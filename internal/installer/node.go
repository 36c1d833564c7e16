package installer

import "os/exec"

func nodeToolingStage() Stage {
	return Stage{
		Name: "node-tooling",
		Enabled: func(st *State) bool {
			return st.Flags.App
		},
		Check: func(st *State) (bool, string) {
			if _, err := exec.LookPath("node"); err == nil {
				return true, "node already installed"
			}
			return false, ""
		},
		Run: func(st *State) error {
			switch st.Sys.Family {
			case FamilyDebian:
				if err := st.Run.Shell("curl -fsSL https://deb.nodesource.com/setup_20.x | bash -"); err != nil {
					return err
				}
			default:
				if err := st.Run.Shell("curl -fsSL https://rpm.nodesource.com/setup_20.x | bash -"); err != nil {
					return err
				}
			}
			return st.Run.Shell(st.Sys.PkgInstall + " nodejs")
		},
	}
}
