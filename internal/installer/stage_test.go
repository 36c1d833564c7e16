package installer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testState builds a dry-run State rooted in a temp directory, so no
// stage can see (or touch) the real host.
func testState(t *testing.T, profile string) (*State, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()

	raw := minimalRaw()
	raw["INSTALL_PROFILE"] = profile
	raw["APP_DIR"] = filepath.Join(dir, "www", "nexus")
	raw["SUBS_DIR"] = filepath.Join(dir, "www", "nexus-subs")
	cfg, err := ParseConfig(raw)
	require.NoError(t, err)

	flags, err := ResolveProfile(profile)
	require.NoError(t, err)

	var buf bytes.Buffer
	log := NewRunLog(&buf, &buf)

	paths := Paths{
		ConfigFile:    filepath.Join(dir, "install.conf"),
		AppsFile:      filepath.Join(dir, "apps.yml"),
		LogFile:       filepath.Join(dir, "install.log"),
		OSRelease:     filepath.Join(dir, "os-release"),
		PasswdFile:    filepath.Join(dir, "passwd"),
		ProcSwaps:     filepath.Join(dir, "swaps"),
		Fstab:         filepath.Join(dir, "fstab"),
		SwapFile:      filepath.Join(dir, "swapfile"),
		AptSourcesDir: filepath.Join(dir, "sources.list.d"),
		YumReposDir:   filepath.Join(dir, "yum.repos.d"),
		RedisConf:     filepath.Join(dir, "redis.conf"),
		NginxSite:     filepath.Join(dir, "nexus.conf"),
		NginxCacheDir: filepath.Join(dir, "nginx-cache"),
		SupervisorDir: filepath.Join(dir, "conf.d"),
		CronSpool:     filepath.Join(dir, "crontab-root"),
		PHPRunDir:     filepath.Join(dir, "php"),
	}

	return &State{
		Cfg:   cfg,
		Flags: flags,
		Sys: SysInfo{
			Family:     FamilyDebian,
			PkgUpdate:  "apt-get update -y",
			PkgInstall: "apt-get install -y",
			WebUser:    "www-data",
		},
		Run:   NewRunner(log, true),
		Log:   log,
		Paths: paths,
		Apps:  AppCatalog,
	}, &buf
}

func namedStage(name string, policy Policy, ran *[]string, fail error) Stage {
	return Stage{
		Name:   name,
		Policy: policy,
		Run: func(st *State) error {
			*ran = append(*ran, name)
			return fail
		},
	}
}

func TestRunPipeline_Order(t *testing.T) {
	st, _ := testState(t, "full")
	var ran []string
	stages := []Stage{
		namedStage("one", Essential, &ran, nil),
		namedStage("two", Essential, &ran, nil),
		namedStage("three", Essential, &ran, nil),
	}

	require.NoError(t, RunPipeline(st, stages))
	assert.Equal(t, []string{"one", "two", "three"}, ran)
	assert.Empty(t, st.Skipped)
}

func TestRunPipeline_DisabledStageSkips(t *testing.T) {
	st, buf := testState(t, "db-only")
	var ran []string
	sg := namedStage("web", Essential, &ran, nil)
	sg.Enabled = func(st *State) bool { return st.Flags.WebServer }

	require.NoError(t, RunPipeline(st, []Stage{sg}))
	assert.Empty(t, ran)
	require.Len(t, st.Skipped, 1)
	assert.Equal(t, "web", st.Skipped[0].Name)
	assert.Equal(t, "disabled by profile", st.Skipped[0].Reason)
	assert.Contains(t, buf.String(), `skip web: disabled by profile "db-only"`)
}

func TestRunPipeline_SatisfiedCheckSkips(t *testing.T) {
	st, _ := testState(t, "full")
	var ran []string
	sg := namedStage("swap", Essential, &ran, nil)
	sg.Check = func(st *State) (bool, string) { return true, "swap already active" }

	require.NoError(t, RunPipeline(st, []Stage{sg}))
	assert.Empty(t, ran)
	require.Len(t, st.Skipped, 1)
	assert.Equal(t, "swap already active", st.Skipped[0].Reason)
}

func TestRunPipeline_EssentialFailureAborts(t *testing.T) {
	st, _ := testState(t, "full")
	var ran []string
	boom := errors.New("boom")
	stages := []Stage{
		namedStage("one", Essential, &ran, nil),
		namedStage("two", Essential, &ran, boom),
		namedStage("three", Essential, &ran, nil),
	}

	err := RunPipeline(st, stages)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "stage two")
	assert.Equal(t, []string{"one", "two"}, ran, "later stages must not run")
}

func TestRunPipeline_AdvisoryFailureContinues(t *testing.T) {
	st, buf := testState(t, "full")
	var ran []string
	stages := []Stage{
		namedStage("one", Advisory, &ran, errors.New("flaky")),
		namedStage("two", Essential, &ran, nil),
	}

	require.NoError(t, RunPipeline(st, stages))
	assert.Equal(t, []string{"one", "two"}, ran)
	assert.Contains(t, buf.String(), "stage one failed (advisory)")
}

func TestStages_FixedOrder(t *testing.T) {
	want := []string{
		"base-packages",
		"swap",
		"php-repository",
		"php-packages",
		"database",
		"redis",
		"source-checkout",
		"node-tooling",
		"backend",
		"frontend",
		"subs-service",
		"nginx",
		"supervisor",
		"cron",
		"bootstrap-jobs",
		"admin-user",
	}
	var got []string
	for _, sg := range Stages() {
		got = append(got, sg.Name)
	}
	assert.Equal(t, want, got)
}

// A dry run over the complete pipeline must log the commands it would run
// and leave the filesystem untouched.
func TestPipeline_FullProfileDryRun(t *testing.T) {
	st, buf := testState(t, "full")

	err := RunPipeline(st, Stages())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "dry-run, would run")
	assert.NoFileExists(t, st.Paths.SwapFile)
	assert.NoFileExists(t, st.Paths.NginxSite)
	assert.NoFileExists(t, st.Paths.Fstab)
}

// A second run on an already-provisioned host must recognise the work as
// done: swap active in /proc/swaps, sources checked out, PHP repository
// configured and the scheduler line present all skip their stages instead
// of redoing them.
func TestPipeline_ReRunSkipsProvisionedHostState(t *testing.T) {
	st, buf := testState(t, "full")

	require.NoError(t, os.WriteFile(st.Paths.ProcSwaps,
		[]byte("Filename\t\t\t\tType\t\tSize\t\tUsed\t\tPriority\n"+st.Paths.SwapFile+"   file\t2097148\t0\t-2\n"), 0o644))
	for _, dir := range []string{st.Cfg.AppDir, st.Cfg.SubsDir} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	}
	require.NoError(t, os.MkdirAll(st.Paths.AptSourcesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(st.Paths.AptSourcesDir, "ondrej-ubuntu-php-noble.list"), nil, 0o644))
	require.NoError(t, os.WriteFile(st.Paths.CronSpool, []byte(schedulerLine(st.Cfg)+"\n"), 0o600))

	require.NoError(t, RunPipeline(st, Stages()))

	skipped := map[string]string{}
	for _, s := range st.Skipped {
		skipped[s.Name] = s.Reason
	}
	assert.Equal(t, "swap file already active", skipped["swap"])
	assert.Equal(t, "all sources already checked out", skipped["source-checkout"])
	assert.Equal(t, "PHP repository already configured", skipped["php-repository"])
	assert.Equal(t, "scheduler entry already present", skipped["cron"])

	out := buf.String()
	assert.NotContains(t, out, "fallocate")
	assert.NotContains(t, out, "git clone")
	assert.NotContains(t, out, "add-apt-repository")
	assert.NotContains(t, out, "crontab -")
}

// Catalog entries that do not own migrations must never run them; the
// apps.yml override is the switch.
func TestBackendStage_MigrationsGatedByCatalog(t *testing.T) {
	st, buf := testState(t, "full")
	apps := make([]AppSpec, len(AppCatalog))
	copy(apps, AppCatalog)
	apps[0].Migrate = false
	st.Apps = apps

	require.NoError(t, RunPipeline(st, []Stage{backendStage()}))
	assert.NotContains(t, buf.String(), "artisan migrate")

	st2, buf2 := testState(t, "full")
	require.NoError(t, RunPipeline(st2, []Stage{backendStage()}))
	assert.Contains(t, buf2.String(), "artisan migrate")
}

func TestPipeline_DBOnlyDryRun(t *testing.T) {
	st, buf := testState(t, "db-only")

	err := RunPipeline(st, Stages())
	require.NoError(t, err)

	skipped := map[string]string{}
	for _, s := range st.Skipped {
		skipped[s.Name] = s.Reason
	}
	for _, name := range []string{"swap", "source-checkout", "backend", "frontend", "subs-service", "nginx", "supervisor", "cron", "admin-user"} {
		assert.Equal(t, "disabled by profile", skipped[name], "stage %s", name)
	}
	_, dbSkipped := skipped["database"]
	assert.False(t, dbSkipped, "database stage must run under db-only")
	assert.Contains(t, buf.String(), "mariadb-server")
}
