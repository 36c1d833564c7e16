package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppCatalog_StockWithoutFile(t *testing.T) {
	apps, err := LoadAppCatalog(filepath.Join(t.TempDir(), "apps.yml"))
	require.NoError(t, err)

	require.Len(t, apps, 2)
	assert.Equal(t, "nexus", apps[0].Name)
	assert.True(t, apps[0].Frontend)
	assert.Equal(t, 2, apps[0].WorkerProcs)
	assert.Equal(t, "subs", apps[1].Name)
	assert.False(t, apps[1].Frontend)
}

func TestLoadAppCatalog_OverrideByName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.yml")
	yml := `
- name: subs
  description: fork of the subscription worker
  worker: php artisan subscriptions:work --tries=5
  worker_procs: 3
  migrate: true
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	apps, err := LoadAppCatalog(path)
	require.NoError(t, err)

	require.Len(t, apps, 2)
	assert.Equal(t, "nexus", apps[0].Name, "untouched entries keep catalog order")
	assert.Equal(t, "php artisan subscriptions:work --tries=5", apps[1].Worker)
	assert.Equal(t, 3, apps[1].WorkerProcs)
}

func TestLoadAppCatalog_UnknownAppFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.yml")
	require.NoError(t, os.WriteFile(path, []byte("- name: mystery\n"), 0o644))

	_, err := LoadAppCatalog(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

func TestConfig_DirAndRepoFor(t *testing.T) {
	cfg, err := ParseConfig(minimalRaw())
	require.NoError(t, err)

	nexus, subs := AppCatalog[0], AppCatalog[1]
	assert.Equal(t, "/var/www/nexus", cfg.DirFor(nexus))
	assert.Equal(t, "/var/www/nexus-subs", cfg.DirFor(subs))
	assert.Contains(t, cfg.RepoFor(nexus), "Nexus.git")
	assert.Contains(t, cfg.RepoFor(subs), "Nexus-Subscriptions.git")
}
