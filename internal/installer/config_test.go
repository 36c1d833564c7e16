package installer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalRaw() map[string]string {
	return map[string]string{
		"DOMAIN":            "nexus.example.com",
		"LETSENCRYPT_EMAIL": "ops@example.com",
		"DB_PASSWORD":       "s3cret",
		"ADMIN_EMAIL":       "admin@example.com",
		"ADMIN_PASSWORD":    "hunter2hunter2",
	}
}

func TestParseConfig_AppliesDefaults(t *testing.T) {
	cfg, err := ParseConfig(minimalRaw())
	require.NoError(t, err)

	assert.Equal(t, "full", cfg.Profile)
	assert.Equal(t, "/var/www/nexus", cfg.AppDir)
	assert.Equal(t, "/var/www/nexus-subs", cfg.SubsDir)
	assert.Equal(t, "main", cfg.AppBranch)
	assert.Equal(t, "127.0.0.1", cfg.DBHost)
	assert.Equal(t, 3306, cfg.DBPort)
	assert.Equal(t, "nexus", cfg.DBName)
	assert.True(t, cfg.UseRedis)
	assert.True(t, cfg.EnableSwap)
	assert.Equal(t, 2, cfg.SwapSizeGB)
	assert.True(t, cfg.EnableSSL)
	assert.Equal(t, "admin", cfg.AdminName)
}

func TestParseConfig_MissingRequiredKeys(t *testing.T) {
	raw := minimalRaw()
	delete(raw, "DOMAIN")
	delete(raw, "ADMIN_PASSWORD")

	_, err := ParseConfig(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOMAIN")
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
}

func TestParseConfig_BadInt(t *testing.T) {
	raw := minimalRaw()
	raw["DB_PORT"] = "lots"

	_, err := ParseConfig(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PORT")
}

func TestParseConfig_UnknownProfile(t *testing.T) {
	raw := minimalRaw()
	raw["INSTALL_PROFILE"] = "kitchen-sink"

	_, err := ParseConfig(raw)
	require.Error(t, err)
}

func TestParseConfig_PreservesUnknownKeys(t *testing.T) {
	raw := minimalRaw()
	raw["SITE_MOTD"] = "hello"

	cfg, err := ParseConfig(raw)
	require.NoError(t, err)
	assert.Equal(t, "hello", cfg.Extra["SITE_MOTD"])
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	run, _ := testRunner(t, false)
	path := filepath.Join(t.TempDir(), "install.conf")

	raw := minimalRaw()
	raw["DB_PASSWORD"] = `pa=ss"word\`
	raw["USE_REDIS"] = "n"
	raw["SITE_MOTD"] = "hello"
	cfg, err := ParseConfig(raw)
	require.NoError(t, err)

	require.NoError(t, SaveConfig(run, path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "config holds secrets")

	reread, err := ReadKVFile(path)
	require.NoError(t, err)
	cfg2, err := ParseConfig(reread)
	require.NoError(t, err)

	assert.Equal(t, `pa=ss"word\`, cfg2.DBPassword)
	assert.False(t, cfg2.UseRedis)
	assert.Equal(t, "hello", cfg2.Extra["SITE_MOTD"])
	assert.Equal(t, cfg.ToMap(), cfg2.ToMap())
}

func TestParseYes(t *testing.T) {
	for _, v := range []string{"y", "Y", "yes", "YES", "true", "1"} {
		assert.True(t, ParseYes(v), "%q should mean yes", v)
	}
	for _, v := range []string{"", "n", "N", "no", "nope", "0", "maybe"} {
		assert.False(t, ParseYes(v), "%q should mean no", v)
	}
}

func TestConfig_RemoteDB(t *testing.T) {
	cfg, err := ParseConfig(minimalRaw())
	require.NoError(t, err)
	assert.False(t, cfg.RemoteDB())

	raw := minimalRaw()
	raw["DB_HOST"] = "db.internal"
	cfg, err = ParseConfig(raw)
	require.NoError(t, err)
	assert.True(t, cfg.RemoteDB())
}

func TestConfig_AppURL(t *testing.T) {
	cfg, err := ParseConfig(minimalRaw())
	require.NoError(t, err)
	assert.Equal(t, "https://nexus.example.com", cfg.AppURL())

	raw := minimalRaw()
	raw["ENABLE_SSL"] = "n"
	cfg, err = ParseConfig(raw)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(cfg.AppURL(), "http://"))
}
