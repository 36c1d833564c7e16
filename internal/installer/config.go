package installer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type FieldKind int

const (
	KindString FieldKind = iota
	KindSecret
	KindBool
	KindInt
	KindProfile
)

// Field describes one setting of the installer: its key in the config
// file, the prompt shown interactively, the default applied to empty
// input, and how free-text answers are coerced.
type Field struct {
	Key      string
	Prompt   string
	Default  string
	Kind     FieldKind
	Required bool
}

// Schema fixes the set of known keys and the order of the interactive
// prompt walk. Required fields without a default are fatal when absent.
var Schema = []Field{
	{Key: "INSTALL_PROFILE", Prompt: "Install profile", Default: "full", Kind: KindProfile},
	{Key: "DOMAIN", Prompt: "Domain the panel will be served on (e.g. nexus.example.com)", Kind: KindString, Required: true},
	{Key: "LETSENCRYPT_EMAIL", Prompt: "Email for Let's Encrypt registration", Kind: KindString, Required: true},
	{Key: "APP_DIR", Prompt: "Install directory for Nexus", Default: "/var/www/nexus", Kind: KindString},
	{Key: "SUBS_DIR", Prompt: "Install directory for the subscriptions service", Default: "/var/www/nexus-subs", Kind: KindString},
	{Key: "APP_REPO_URL", Prompt: "Nexus git repository", Default: "https://github.com/Yosodog/Nexus.git", Kind: KindString},
	{Key: "SUBS_REPO_URL", Prompt: "Subscriptions service git repository", Default: "https://github.com/Yosodog/Nexus-Subscriptions.git", Kind: KindString},
	{Key: "APP_BRANCH", Prompt: "Git branch to deploy", Default: "main", Kind: KindString},
	{Key: "DB_HOST", Prompt: "Database host", Default: "127.0.0.1", Kind: KindString},
	{Key: "DB_PORT", Prompt: "Database port", Default: "3306", Kind: KindInt},
	{Key: "DB_NAME", Prompt: "Database name", Default: "nexus", Kind: KindString},
	{Key: "DB_USER", Prompt: "Database user", Default: "nexus", Kind: KindString},
	{Key: "DB_PASSWORD", Prompt: "Database password", Kind: KindSecret, Required: true},
	{Key: "USE_REDIS", Prompt: "Install Redis for cache and queues?", Default: "y", Kind: KindBool},
	{Key: "REDIS_MAXMEMORY", Prompt: "Redis maxmemory", Default: "256mb", Kind: KindString},
	{Key: "ENABLE_SWAP", Prompt: "Create a swap file?", Default: "y", Kind: KindBool},
	{Key: "SWAP_SIZE_GB", Prompt: "Swap size in GiB", Default: "2", Kind: KindInt},
	{Key: "ENABLE_SSL", Prompt: "Obtain a Let's Encrypt certificate?", Default: "y", Kind: KindBool},
	{Key: "PW_API_KEY", Prompt: "Politics & War API key (blank to configure later)", Kind: KindSecret},
	{Key: "ADMIN_NAME", Prompt: "Admin account name", Default: "admin", Kind: KindString},
	{Key: "ADMIN_EMAIL", Prompt: "Admin account email", Kind: KindString, Required: true},
	{Key: "ADMIN_PASSWORD", Prompt: "Admin account password", Kind: KindSecret, Required: true},
}

// Config is the validated configuration record. It is assembled once at
// startup and read-only for the rest of the run.
type Config struct {
	Profile          string
	Domain           string
	LetsEncryptEmail string
	AppDir           string
	SubsDir          string
	AppRepoURL       string
	SubsRepoURL      string
	AppBranch        string
	DBHost           string
	DBPort           int
	DBName           string
	DBUser           string
	DBPassword       string
	UseRedis         bool
	RedisMaxMemory   string
	EnableSwap       bool
	SwapSizeGB       int
	EnableSSL        bool
	PWAPIKey         string
	AdminName        string
	AdminEmail       string
	AdminPassword    string

	// Unknown keys found in the file: preserved on save, never consumed.
	Extra map[string]string
}

// ParseConfig validates a raw key/value map against the schema, applying
// defaults and coercions, and returns the typed record. Any missing
// required key is reported before a single stage runs.
func ParseConfig(raw map[string]string) (*Config, error) {
	values := map[string]string{}
	var missing []string
	for _, f := range Schema {
		v, ok := raw[f.Key]
		v = strings.TrimSpace(v)
		if !ok || v == "" {
			if f.Required && f.Default == "" {
				missing = append(missing, f.Key)
				continue
			}
			v = f.Default
		}
		values[f.Key] = v
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration keys: %s", strings.Join(missing, ", "))
	}

	cfg := &Config{
		Profile:          values["INSTALL_PROFILE"],
		Domain:           values["DOMAIN"],
		LetsEncryptEmail: values["LETSENCRYPT_EMAIL"],
		AppDir:           values["APP_DIR"],
		SubsDir:          values["SUBS_DIR"],
		AppRepoURL:       values["APP_REPO_URL"],
		SubsRepoURL:      values["SUBS_REPO_URL"],
		AppBranch:        values["APP_BRANCH"],
		DBHost:           values["DB_HOST"],
		DBName:           values["DB_NAME"],
		DBUser:           values["DB_USER"],
		DBPassword:       values["DB_PASSWORD"],
		RedisMaxMemory:   values["REDIS_MAXMEMORY"],
		PWAPIKey:         values["PW_API_KEY"],
		AdminName:        values["ADMIN_NAME"],
		AdminEmail:       values["ADMIN_EMAIL"],
		AdminPassword:    values["ADMIN_PASSWORD"],
		Extra:            map[string]string{},
	}

	var err error
	if cfg.DBPort, err = parseIntField("DB_PORT", values["DB_PORT"]); err != nil {
		return nil, err
	}
	if cfg.SwapSizeGB, err = parseIntField("SWAP_SIZE_GB", values["SWAP_SIZE_GB"]); err != nil {
		return nil, err
	}
	cfg.UseRedis = ParseYes(values["USE_REDIS"])
	cfg.EnableSwap = ParseYes(values["ENABLE_SWAP"])
	cfg.EnableSSL = ParseYes(values["ENABLE_SSL"])

	if _, err := ResolveProfile(cfg.Profile); err != nil {
		return nil, err
	}

	known := map[string]bool{}
	for _, f := range Schema {
		known[f.Key] = true
	}
	for k, v := range raw {
		if !known[k] {
			cfg.Extra[k] = v
		}
	}
	return cfg, nil
}

// ToMap renders the record back into the flat key/value form.
func (c *Config) ToMap() map[string]string {
	m := map[string]string{
		"INSTALL_PROFILE":   c.Profile,
		"DOMAIN":            c.Domain,
		"LETSENCRYPT_EMAIL": c.LetsEncryptEmail,
		"APP_DIR":           c.AppDir,
		"SUBS_DIR":          c.SubsDir,
		"APP_REPO_URL":      c.AppRepoURL,
		"SUBS_REPO_URL":     c.SubsRepoURL,
		"APP_BRANCH":        c.AppBranch,
		"DB_HOST":           c.DBHost,
		"DB_PORT":           strconv.Itoa(c.DBPort),
		"DB_NAME":           c.DBName,
		"DB_USER":           c.DBUser,
		"DB_PASSWORD":       c.DBPassword,
		"USE_REDIS":         formatYes(c.UseRedis),
		"REDIS_MAXMEMORY":   c.RedisMaxMemory,
		"ENABLE_SWAP":       formatYes(c.EnableSwap),
		"SWAP_SIZE_GB":      strconv.Itoa(c.SwapSizeGB),
		"ENABLE_SSL":        formatYes(c.EnableSSL),
		"PW_API_KEY":        c.PWAPIKey,
		"ADMIN_NAME":        c.AdminName,
		"ADMIN_EMAIL":       c.AdminEmail,
		"ADMIN_PASSWORD":    c.AdminPassword,
	}
	for k, v := range c.Extra {
		m[k] = v
	}
	return m
}

// SaveConfig persists the record through the runner, schema keys first in
// schema order, unknown keys after, so repeated saves are byte-stable.
func SaveConfig(run Runner, path string, cfg *Config) error {
	m := cfg.ToMap()
	var b strings.Builder
	b.WriteString("# Generated by nexus-setup. Safe to edit; re-run the installer to apply.\n")
	for _, f := range Schema {
		b.WriteString(f.Key + "=" + `"` + escapeValue(m[f.Key]) + `"` + "\n")
	}
	extras := make([]string, 0, len(cfg.Extra))
	for k := range cfg.Extra {
		extras = append(extras, k)
	}
	sort.Strings(extras)
	for _, k := range extras {
		b.WriteString(k + "=" + `"` + escapeValue(cfg.Extra[k]) + `"` + "\n")
	}
	return run.WriteFile(path, []byte(b.String()), 0o600)
}

// RemoteDB reports whether the database target is another host rather
// than a local MariaDB install.
func (c *Config) RemoteDB() bool {
	return c.DBHost != "127.0.0.1" && c.DBHost != "localhost"
}

func (c *Config) AppURL() string {
	scheme := "http"
	if c.EnableSSL {
		scheme = "https"
	}
	return scheme + "://" + c.Domain
}

// ParseYes implements the documented yes/no coercion: y/Y (and the spelled
// out variants) mean yes, anything else means no.
func ParseYes(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}

func formatYes(v bool) string {
	if v {
		return "y"
	}
	return "n"
}

func parseIntField(key, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q is not a number", key, v)
	}
	return n, nil
}
