package installer

import (
	"os"
	"strings"
)

const (
	defaultConfigFile = "/etc/nexus-setup/install.conf"
	defaultAppsFile   = "/etc/nexus-setup/apps.yml"
	defaultLogFile    = "/var/log/nexus-setup/install.log"
)

// Paths collects every host location the installer reads or writes.
// Tests point these at temp directories; the config and log locations can
// also be moved with environment variables.
type Paths struct {
	ConfigFile string
	AppsFile   string
	LogFile    string

	OSRelease     string
	PasswdFile    string
	ProcSwaps     string
	Fstab         string
	SwapFile      string
	AptSourcesDir string
	YumReposDir   string
	RedisConf     string
	NginxSite     string
	NginxCacheDir string
	SupervisorDir string
	CronSpool     string
	PHPRunDir     string
}

func DefaultPaths() Paths {
	return Paths{
		ConfigFile:    envOr("NEXUS_SETUP_CONFIG", defaultConfigFile),
		AppsFile:      envOr("NEXUS_SETUP_APPS", defaultAppsFile),
		LogFile:       envOr("NEXUS_SETUP_LOG", defaultLogFile),
		OSRelease:     "/etc/os-release",
		PasswdFile:    "/etc/passwd",
		ProcSwaps:     "/proc/swaps",
		Fstab:         "/etc/fstab",
		SwapFile:      "/swapfile",
		AptSourcesDir: "/etc/apt/sources.list.d",
		YumReposDir:   "/etc/yum.repos.d",
		RedisConf:     "/etc/redis/redis.conf",
		NginxSite:     "/etc/nginx/conf.d/nexus.conf",
		NginxCacheDir: "/var/cache/nginx/nexus",
		SupervisorDir: "/etc/supervisor/conf.d",
		CronSpool:     "/var/spool/cron/crontabs/root",
		PHPRunDir:     "/run/php",
	}
}

// applyFamily adjusts the locations that differ between package families.
func (p *Paths) applyFamily(family PackageFamily) {
	if family == FamilyRHEL {
		p.SupervisorDir = "/etc/supervisord.d"
		p.CronSpool = "/var/spool/cron/root"
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
