package installer

import (
	"fmt"
	"strings"
)

// StageFlags is the boolean enablement set derived from one profile name.
// It is computed once, after the configuration record is finalized, and
// read-only for the rest of the run.
type StageFlags struct {
	Database           bool
	WebServer          bool
	App                bool
	Subs               bool
	Supervisor         bool
	SupervisorSubsOnly bool
	Cron               bool
	BootstrapJobs      bool
	AdminUser          bool
}

// ProfileNames lists the five install profiles in prompt order: the
// interactive profile question maps answers 1-5 onto this slice.
var ProfileNames = []string{
	"full",
	"app-web-subs-remote-db",
	"web-only",
	"db-only",
	"subs-only",
}

var profileDescriptions = map[string]string{
	"full":                   "everything on one host: database, web server, Nexus, subscriptions service",
	"app-web-subs-remote-db": "Nexus, web server and subscriptions service against a remote database",
	"web-only":               "Nexus and web server only, no database and no subscriptions service",
	"db-only":                "database server only",
	"subs-only":              "subscriptions service only, supervised worker and nothing else",
}

var profileFlags = map[string]StageFlags{
	"full": {
		Database: true, WebServer: true, App: true, Subs: true,
		Supervisor: true, Cron: true, BootstrapJobs: true, AdminUser: true,
	},
	"app-web-subs-remote-db": {
		WebServer: true, App: true, Subs: true,
		Supervisor: true, Cron: true, BootstrapJobs: true, AdminUser: true,
	},
	"web-only": {
		WebServer: true, App: true,
		Supervisor: true, Cron: true, BootstrapJobs: true, AdminUser: true,
	},
	"db-only": {
		Database: true,
	},
	"subs-only": {
		Subs: true, Supervisor: true, SupervisorSubsOnly: true,
	},
}

// ResolveProfile maps a profile name onto its stage flag set. Resolution
// is a pure table lookup: the same name always yields the same flags, and
// an unrecognized name is fatal.
func ResolveProfile(name string) (StageFlags, error) {
	flags, ok := profileFlags[name]
	if !ok {
		return StageFlags{}, fmt.Errorf("unknown install profile %q (choose one of: %s)",
			name, strings.Join(ProfileNames, ", "))
	}
	return flags, nil
}

// ProfileDescription returns the one-line summary used by the usage
// listing and the interactive profile prompt.
func ProfileDescription(name string) string {
	return profileDescriptions[name]
}
