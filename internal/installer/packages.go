package installer

import (
	"path/filepath"
	"strings"
)

func needsPHP(st *State) bool {
	return st.Flags.App || st.Flags.WebServer || st.Flags.Subs
}

func basePackagesStage() Stage {
	return Stage{
		Name: "base-packages",
		Run: func(st *State) error {
			if err := st.Run.Shell(st.Sys.PkgUpdate); err != nil {
				return err
			}
			pkgs := []string{"git", "curl", "wget", "unzip", "zip", "ca-certificates"}
			switch st.Sys.Family {
			case FamilyDebian:
				pkgs = append(pkgs, "software-properties-common", "cron", "acl")
			case FamilyRHEL:
				pkgs = append(pkgs, "cronie", "dnf-plugins-core")
			}
			return st.Run.Shell(st.Sys.PkgInstall + " " + strings.Join(pkgs, " "))
		},
	}
}

func phpRepositoryStage() Stage {
	return Stage{
		Name:    "php-repository",
		Enabled: needsPHP,
		Check: func(st *State) (bool, string) {
			switch st.Sys.Family {
			case FamilyDebian:
				matches, _ := filepath.Glob(filepath.Join(st.Paths.AptSourcesDir, "*ondrej*"))
				if len(matches) > 0 {
					return true, "PHP repository already configured"
				}
			case FamilyRHEL:
				matches, _ := filepath.Glob(filepath.Join(st.Paths.YumReposDir, "remi*.repo"))
				if len(matches) > 0 {
					return true, "PHP repository already configured"
				}
			}
			return false, ""
		},
		Run: func(st *State) error {
			switch st.Sys.Family {
			case FamilyDebian:
				if err := st.Run.Shell("add-apt-repository -y ppa:ondrej/php"); err != nil {
					return err
				}
				return st.Run.Shell(st.Sys.PkgUpdate)
			default:
				if err := st.Run.Shell(st.Sys.PkgInstall + " epel-release"); err != nil {
					return err
				}
				if err := st.Run.Shell(st.Sys.PkgInstall + " https://rpms.remirepo.net/enterprise/remi-release-9.rpm"); err != nil {
					return err
				}
				return st.Run.Shell("dnf module enable -y php:remi-8.3")
			}
		},
	}
}

func phpPackagesStage() Stage {
	return Stage{
		Name:    "php-packages",
		Enabled: needsPHP,
		Run: func(st *State) error {
			var pkgs []string
			switch st.Sys.Family {
			case FamilyDebian:
				pkgs = []string{
					"php8.3-fpm", "php8.3-cli", "php8.3-mysql", "php8.3-mbstring",
					"php8.3-xml", "php8.3-curl", "php8.3-zip", "php8.3-gd",
					"php8.3-bcmath", "php8.3-intl", "php8.3-redis",
				}
			case FamilyRHEL:
				pkgs = []string{
					"php-fpm", "php-cli", "php-mysqlnd", "php-mbstring",
					"php-xml", "php-curl", "php-zip", "php-gd",
					"php-bcmath", "php-intl", "php-redis",
				}
			}
			if err := st.Run.Shell(st.Sys.PkgInstall + " " + strings.Join(pkgs, " ")); err != nil {
				return err
			}
			if err := st.Run.Shell("systemctl enable --now php*-fpm.service"); err != nil {
				return err
			}
			if !fileExists("/usr/local/bin/composer") {
				if err := st.Run.Shell("curl -sS https://getcomposer.org/installer | php -- --install-dir=/usr/local/bin --filename=composer"); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
