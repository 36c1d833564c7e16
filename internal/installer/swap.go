package installer

import "fmt"

func swapStage() Stage {
	return Stage{
		Name: "swap",
		Enabled: func(st *State) bool {
			return st.Flags.App && st.Cfg.EnableSwap
		},
		Check: func(st *State) (bool, string) {
			if fileContainsString(st.Paths.ProcSwaps, st.Paths.SwapFile) {
				return true, "swap file already active"
			}
			return false, ""
		},
		Run: func(st *State) error {
			f := st.Paths.SwapFile
			if err := st.Run.Shell(fmt.Sprintf("fallocate -l %dG %s", st.Cfg.SwapSizeGB, f)); err != nil {
				return err
			}
			if err := st.Run.Shell("chmod 600 " + f); err != nil {
				return err
			}
			if err := st.Run.Shell("mkswap " + f); err != nil {
				return err
			}
			if err := st.Run.Shell("swapon " + f); err != nil {
				return err
			}
			// Register for boot only once; the fstab line survives re-runs.
			return appendLineUnique(st, st.Paths.Fstab, f+" none swap sw 0 0")
		},
	}
}
