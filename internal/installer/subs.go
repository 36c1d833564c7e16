package installer

import "fmt"

func subsServiceStage() Stage {
	return Stage{
		Name: "subs-service",
		Enabled: func(st *State) bool {
			return st.Flags.Subs
		},
		Run: func(st *State) error {
			dir := st.Cfg.SubsDir
			if err := configureAppEnv(st, dir); err != nil {
				return err
			}
			if err := st.Run.Shell(fmt.Sprintf("cd %s && composer install --no-dev --optimize-autoloader --no-interaction", dir)); err != nil {
				return err
			}
			if st.appMigrates("subs") {
				if err := st.Run.Shell(fmt.Sprintf("cd %s && php artisan migrate --force", dir)); err != nil {
					return err
				}
			}
			return st.Run.Shell(fmt.Sprintf("chown -R %s:%s %s", st.Sys.WebUser, st.Sys.WebUser, dir))
		},
	}
}
