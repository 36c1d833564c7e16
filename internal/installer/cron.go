package installer

import "fmt"

func schedulerLine(cfg *Config) string {
	return fmt.Sprintf("* * * * * cd %s && php artisan schedule:run >> /dev/null 2>&1", cfg.AppDir)
}

func cronStage() Stage {
	return Stage{
		Name: "cron",
		Enabled: func(st *State) bool {
			return st.Flags.Cron
		},
		Check: func(st *State) (bool, string) {
			if fileContainsLine(st.Paths.CronSpool, schedulerLine(st.Cfg)) {
				return true, "scheduler entry already present"
			}
			return false, ""
		},
		Run: func(st *State) error {
			line := schedulerLine(st.Cfg)
			return st.Run.Shell(fmt.Sprintf("(crontab -l 2>/dev/null; echo %s) | crontab -", shellQuote(line)))
		},
	}
}
