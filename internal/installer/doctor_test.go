package installer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritableCheck(t *testing.T) {
	assert.NoError(t, writableCheck(t.TempDir()))
	assert.NoError(t, writableCheck(filepath.Join(t.TempDir(), "made", "on", "demand")))
}

func TestDiskCheck(t *testing.T) {
	assert.NoError(t, diskCheck(t.TempDir(), 0))
	assert.Error(t, diskCheck(t.TempDir(), 1<<40), "nobody has a yobibyte free")
}

func TestRunChecks_ReportsEveryProbe(t *testing.T) {
	p := writeOSRelease(t, "ID=ubuntu\nID_LIKE=debian\n")
	p.ConfigFile = filepath.Join(filepath.Dir(p.OSRelease), "install.conf")
	p.LogFile = filepath.Join(filepath.Dir(p.OSRelease), "install.log")

	results := RunChecks(p)
	require.NotEmpty(t, results)

	names := map[string]bool{}
	for _, r := range results {
		names[r.Name] = true
		if !r.OK {
			assert.Error(t, r.Err, "failed probe %s must explain itself", r.Name)
		}
	}
	assert.True(t, names["supported OS"])
	assert.True(t, names["running as root"])
	assert.True(t, names["disk space >= 5GiB on /"])
}
