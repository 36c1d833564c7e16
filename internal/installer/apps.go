package installer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppSpec describes one of the two applications the installer provisions.
// Repo URL and install directory come from the configuration record; the
// catalog holds what is fixed per application.
type AppSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Worker is the long-running command Supervisor keeps alive, relative
	// to the app directory. Empty means no supervised process.
	Worker      string `yaml:"worker"`
	WorkerProcs int    `yaml:"worker_procs"`
	// Frontend marks apps with an npm asset build.
	Frontend bool `yaml:"frontend"`
	// Migrate marks apps that own database migrations.
	Migrate bool `yaml:"migrate"`
}

// AppCatalog is the fixed pair of applications. An apps.yml next to the
// config file can override entries by name, for deployments tracking a
// fork.
var AppCatalog = []AppSpec{
	{
		Name:        "nexus",
		Description: "Nexus web application",
		Worker:      "php artisan queue:work --tries=3 --sleep=3",
		WorkerProcs: 2,
		Frontend:    true,
		Migrate:     true,
	},
	{
		Name:        "subs",
		Description: "subscription synchronisation service",
		Worker:      "php artisan subscriptions:work",
		WorkerProcs: 1,
		Migrate:     true,
	},
}

// LoadAppCatalog returns the catalog, with any overrides from the given
// yaml file applied by name. A missing file means the stock catalog.
func LoadAppCatalog(path string) ([]AppSpec, error) {
	apps := make([]AppSpec, len(AppCatalog))
	copy(apps, AppCatalog)

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return apps, nil
		}
		return nil, err
	}
	var overrides []AppSpec
	if err := yaml.Unmarshal(b, &overrides); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, o := range overrides {
		found := false
		for i := range apps {
			if apps[i].Name == o.Name {
				apps[i] = o
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%s: unknown app %q (catalog has: nexus, subs)", path, o.Name)
		}
	}
	return apps, nil
}

// DirFor returns the configured install directory of an app.
func (c *Config) DirFor(app AppSpec) string {
	if app.Name == "subs" {
		return c.SubsDir
	}
	return c.AppDir
}

// RepoFor returns the configured git repository of an app.
func (c *Config) RepoFor(app AppSpec) string {
	if app.Name == "subs" {
		return c.SubsRepoURL
	}
	return c.AppRepoURL
}
