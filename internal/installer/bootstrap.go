package installer

import "fmt"

// bootstrapJobsStage fires the one-time data syncs that seed a fresh
// install. Every job is advisory: the panel works without them and each
// can be re-run by hand, so a flaky upstream API must not sink the run.
func bootstrapJobsStage() Stage {
	return Stage{
		Name: "bootstrap-jobs",
		Enabled: func(st *State) bool {
			return st.Flags.BootstrapJobs
		},
		Policy: Advisory,
		Run: func(st *State) error {
			jobs := []string{
				"php artisan pw:sync-alliance",
				"php artisan pw:sync-members",
				"php artisan pw:sync-wars",
			}
			for _, job := range jobs {
				st.Run.Attempt(fmt.Sprintf("cd %s && %s", st.Cfg.AppDir, job))
			}
			if st.Flags.Subs {
				st.Run.Attempt(fmt.Sprintf("cd %s && php artisan subscriptions:sync", st.Cfg.SubsDir))
			}
			return nil
		},
	}
}

// adminUserStage provisions the admin through the application's own
// user-creation command rather than raw table inserts, so password
// hashing and uniqueness checks stay in one place.
func adminUserStage() Stage {
	return Stage{
		Name: "admin-user",
		Enabled: func(st *State) bool {
			return st.Flags.AdminUser
		},
		Run: func(st *State) error {
			return st.Run.Shell(fmt.Sprintf(
				"cd %s && php artisan nexus:create-admin --name=%s --email=%s --password=%s",
				st.Cfg.AppDir,
				shellQuote(st.Cfg.AdminName),
				shellQuote(st.Cfg.AdminEmail),
				shellQuote(st.Cfg.AdminPassword)))
		},
	}
}
