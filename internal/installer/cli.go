package installer

import (
	"flag"
	"fmt"
	"os"
)

// Run dispatches the CLI. The setup wizard lives in internal/tui and is
// dispatched by the main package; everything else lands here.
func Run(args []string) error {
	if len(args) < 1 {
		args = []string{"install"}
	}

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "install":
		return cmdInstall(cmdArgs)
	case "profiles":
		return cmdProfiles()
	case "report":
		return cmdReport(cmdArgs)
	case "doctor":
		return RunDoctor(os.Stdout)
	case "help", "--help", "-h":
		Usage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func Usage() {
	fmt.Println(`nexus-setup - provision a production host for Nexus and its subscriptions service

Usage:
  nexus-setup install [--dry-run] [--non-interactive] [--config PATH] [--profile NAME]
  nexus-setup setup                 # interactive setup wizard
  nexus-setup profiles              # list the install profiles
  nexus-setup report [--config PATH]
  nexus-setup doctor
  nexus-setup help

Install profiles:`)

	for i, name := range ProfileNames {
		fmt.Printf("  %d) %-24s %s\n", i+1, name, ProfileDescription(name))
	}
}

func cmdInstall(args []string) error {
	fs := flag.NewFlagSet("install", flag.ContinueOnError)
	dryRun := fs.Bool("dry-run", false, "print every command a real run would execute, mutate nothing")
	nonInteractive := fs.Bool("non-interactive", false, "require an existing config file, never prompt")
	configPath := fs.String("config", "", "config file path (default "+defaultConfigFile+")")
	profile := fs.String("profile", "", "override the configured install profile")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return Install(Options{
		DryRun:         *dryRun,
		NonInteractive: *nonInteractive,
		ConfigPath:     *configPath,
		Profile:        *profile,
	})
}

func cmdProfiles() error {
	fmt.Printf("%-24s %-9s %-6s %-5s %-5s %-11s %-5s %-9s %s\n",
		"profile", "database", "nginx", "app", "subs", "supervisor", "cron", "bootstrap", "admin")
	for _, name := range ProfileNames {
		f, err := ResolveProfile(name)
		if err != nil {
			return err
		}
		sup := onOff(f.Supervisor)
		if f.SupervisorSubsOnly {
			sup = "subs-only"
		}
		fmt.Printf("%-24s %-9s %-6s %-5s %-5s %-11s %-5s %-9s %s\n",
			name, onOff(f.Database), onOff(f.WebServer), onOff(f.App), onOff(f.Subs),
			sup, onOff(f.Cron), onOff(f.BootstrapJobs), onOff(f.AdminUser))
	}
	return nil
}

func cmdReport(args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	configPath := fs.String("config", "", "config file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	paths := DefaultPaths()
	if *configPath != "" {
		paths.ConfigFile = *configPath
	}
	raw, err := ReadKVFile(paths.ConfigFile)
	if err != nil {
		return fmt.Errorf("read config %s: %w", paths.ConfigFile, err)
	}
	cfg, err := ParseConfig(raw)
	if err != nil {
		return err
	}
	flags, err := ResolveProfile(cfg.Profile)
	if err != nil {
		return err
	}

	log, err := OpenRunLog(paths.LogFile, os.Stdout)
	if err != nil {
		return err
	}
	defer log.Close()

	sys, err := Detect(paths)
	if err != nil {
		return err
	}
	paths.applyFamily(sys.Family)

	st := &State{
		Cfg:   cfg,
		Flags: flags,
		Sys:   sys,
		Run:   NewRunner(log, false),
		Log:   log,
		Paths: paths,
	}
	BuildReport(st, nil).Render(os.Stdout)
	return nil
}
