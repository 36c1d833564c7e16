package installer

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Options is everything the install entry point needs from the outside
// world; tests substitute the reader and writer.
type Options struct {
	DryRun         bool
	NonInteractive bool
	ConfigPath     string
	Profile        string

	Stdin  io.Reader
	Stdout io.Writer
}

// Install runs the full pipeline: preconditions, configuration (file or
// prompts), profile resolution, the stage walk, and the summary report.
// A user abort during confirmation returns nil with nothing done.
func Install(opt Options) error {
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}

	paths := DefaultPaths()
	if opt.ConfigPath != "" {
		paths.ConfigFile = opt.ConfigPath
	}

	log, err := OpenRunLog(paths.LogFile, opt.Stdout)
	if err != nil {
		if !opt.DryRun {
			return err
		}
		// Dry runs work without root; fall back to console-only logging.
		log = NewRunLog(io.Discard, opt.Stdout)
	}
	defer log.Close()
	run := NewRunner(log, opt.DryRun)

	if !opt.DryRun && os.Geteuid() != 0 {
		return errors.New("a real install must run as root; use --dry-run to preview")
	}

	sys, err := Detect(paths)
	if err != nil {
		return err
	}
	sys.WebUser = DetectWebUser(paths, log)
	paths.applyFamily(sys.Family)

	cfg, err := loadOrPromptConfig(opt, paths, run, log)
	if err != nil {
		if errors.Is(err, ErrAborted) {
			log.Infof("installation aborted; nothing was changed")
			return nil
		}
		return err
	}
	if opt.Profile != "" {
		cfg.Profile = opt.Profile
	}

	flags, err := ResolveProfile(cfg.Profile)
	if err != nil {
		return err
	}

	apps, err := LoadAppCatalog(paths.AppsFile)
	if err != nil {
		return err
	}

	log.Infof("installing with profile %q (dry-run: %v)", cfg.Profile, opt.DryRun)
	st := &State{
		Cfg:   cfg,
		Flags: flags,
		Sys:   sys,
		Run:   run,
		Log:   log,
		Paths: paths,
		Apps:  apps,
	}

	runErr := RunPipeline(st, Stages())
	BuildReport(st, runErr).Render(opt.Stdout)
	return runErr
}

// loadOrPromptConfig populates the configuration record: from the file
// when present, else by walking the interactive prompts and persisting
// the answers for future non-interactive runs.
func loadOrPromptConfig(opt Options, paths Paths, run Runner, log *RunLog) (*Config, error) {
	raw, err := ReadKVFile(paths.ConfigFile)
	if err == nil {
		return ParseConfig(raw)
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", paths.ConfigFile, err)
	}
	if opt.NonInteractive {
		return nil, fmt.Errorf("config file %s not found and --non-interactive is set", paths.ConfigFile)
	}

	answers, err := NewPrompter(opt.Stdin, opt.Stdout).Walk()
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(answers)
	if err != nil {
		return nil, err
	}
	if err := SaveConfig(run, paths.ConfigFile, cfg); err != nil {
		return nil, err
	}
	log.Infof("configuration saved to %s", paths.ConfigFile)
	return cfg, nil
}
