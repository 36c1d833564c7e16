package installer

import (
	"fmt"
	"strings"
)

func databaseStage() Stage {
	return Stage{
		Name: "database",
		Enabled: func(st *State) bool {
			return st.Flags.Database
		},
		Run: func(st *State) error {
			var pkg string
			switch st.Sys.Family {
			case FamilyDebian:
				pkg = "mariadb-server mariadb-client"
			case FamilyRHEL:
				pkg = "mariadb-server mariadb"
			}
			if err := st.Run.Shell(st.Sys.PkgInstall + " " + pkg); err != nil {
				return err
			}
			if err := st.Run.Shell("systemctl enable --now mariadb"); err != nil {
				return err
			}

			// IF NOT EXISTS makes the provisioning statements safe to
			// re-run; grants are a no-op when already present.
			stmts := []string{
				fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci", st.Cfg.DBName),
				fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'localhost' IDENTIFIED BY '%s'", st.Cfg.DBUser, sqlEscape(st.Cfg.DBPassword)),
				fmt.Sprintf("GRANT ALL PRIVILEGES ON %s.* TO '%s'@'localhost'", st.Cfg.DBName, st.Cfg.DBUser),
				"FLUSH PRIVILEGES",
			}
			for _, stmt := range stmts {
				if err := st.Run.Shell("mysql -e " + shellQuote(stmt)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func sqlEscape(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, "'", `\'`)
}
