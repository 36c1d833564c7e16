package installer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNginxVhost(t *testing.T) {
	text, err := renderString(nginxVhostTemplate, renderData{
		Domain:    "nexus.example.com",
		AppDir:    "/var/www/nexus",
		PHPSocket: "/run/php/php8.3-fpm.sock",
		CacheDir:  "/var/cache/nginx/nexus",
		EnableSSL: true,
	})
	require.NoError(t, err)

	assert.Contains(t, text, "server_name nexus.example.com;")
	assert.Contains(t, text, "root /var/www/nexus/public;")
	assert.Contains(t, text, "fastcgi_pass unix:/run/php/php8.3-fpm.sock;")
	assert.Contains(t, text, "fastcgi_cache_path /var/cache/nginx/nexus")
	assert.Contains(t, text, "deny all;", "dotfiles must stay hidden")
	assert.NotContains(t, text, "{{", "no unexpanded template actions")
}

func TestRenderSupervisorProgram(t *testing.T) {
	text, err := renderString(supervisorProgramTemplate, renderData{
		AppName: "nexus-subs",
		Command: "php artisan subscriptions:work",
		AppDir:  "/var/www/nexus-subs",
		WebUser: "www-data",
		Procs:   1,
		LogFile: "/var/log/supervisor/nexus-subs.log",
	})
	require.NoError(t, err)

	assert.Contains(t, text, "[program:nexus-subs]")
	assert.Contains(t, text, "command=php artisan subscriptions:work")
	assert.Contains(t, text, "numprocs=1")
	assert.Contains(t, text, "autorestart=true")
}

func TestRenderString_UnknownFieldFails(t *testing.T) {
	_, err := renderString("{{.NoSuchField}}", renderData{})
	assert.Error(t, err, "typos in templates must fail loudly, not render blanks")
}

func TestSupervisedApps_SubsOnlyRestriction(t *testing.T) {
	st, _ := testState(t, "subs-only")

	apps := st.supervisedApps()
	require.Len(t, apps, 1)
	assert.Equal(t, "subs", apps[0].Name)
}

func TestSupervisedApps_FullProfile(t *testing.T) {
	st, _ := testState(t, "full")

	var names []string
	for _, app := range st.supervisedApps() {
		names = append(names, app.Name)
	}
	assert.Equal(t, []string{"nexus", "subs"}, names)
}
