package installer

import (
	"fmt"
	"path/filepath"
)

func backendStage() Stage {
	return Stage{
		Name: "backend",
		Enabled: func(st *State) bool {
			return st.Flags.App
		},
		Run: func(st *State) error {
			dir := st.Cfg.AppDir
			if err := configureAppEnv(st, dir); err != nil {
				return err
			}
			if err := st.Run.Shell(fmt.Sprintf("cd %s && composer install --no-dev --optimize-autoloader --no-interaction", dir)); err != nil {
				return err
			}
			// Generate the app key only once: regenerating invalidates
			// every encrypted value the app has stored.
			if readKVKey(filepath.Join(dir, ".env"), "APP_KEY") == "" {
				if err := st.Run.Shell(fmt.Sprintf("cd %s && php artisan key:generate --force", dir)); err != nil {
					return err
				}
			}
			if st.appMigrates("nexus") {
				if err := st.Run.Shell(fmt.Sprintf("cd %s && php artisan migrate --force", dir)); err != nil {
					return err
				}
			}
			st.Run.Attempt(fmt.Sprintf("cd %s && php artisan storage:link", dir))
			return st.Run.Shell(fmt.Sprintf("chown -R %s:%s %s", st.Sys.WebUser, st.Sys.WebUser, dir))
		},
	}
}

// configureAppEnv seeds the application's .env from its sample on first
// run, then upserts the values this host needs. Keys are replaced in
// place, never duplicated.
func configureAppEnv(st *State, dir string) error {
	envFile := filepath.Join(dir, ".env")
	if !fileExists(envFile) {
		if err := st.Run.Shell(fmt.Sprintf("cp %s %s", filepath.Join(dir, ".env.example"), envFile)); err != nil {
			return err
		}
	}

	cacheDriver := "file"
	queueDriver := "database"
	if st.Cfg.UseRedis {
		cacheDriver = "redis"
		queueDriver = "redis"
	}
	pairs := [][2]string{
		{"APP_ENV", "production"},
		{"APP_DEBUG", "false"},
		{"APP_URL", st.Cfg.AppURL()},
		{"DB_HOST", st.Cfg.DBHost},
		{"DB_PORT", fmt.Sprintf("%d", st.Cfg.DBPort)},
		{"DB_DATABASE", st.Cfg.DBName},
		{"DB_USERNAME", st.Cfg.DBUser},
		{"DB_PASSWORD", st.Cfg.DBPassword},
		{"CACHE_DRIVER", cacheDriver},
		{"QUEUE_CONNECTION", queueDriver},
		{"PW_API_KEY", st.Cfg.PWAPIKey},
	}
	for _, kv := range pairs {
		if err := SetKey(st.Run, envFile, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}
