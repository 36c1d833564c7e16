package installer

import (
	"bufio"
	"os"
	"strings"
)

// ReadKVFile parses a flat KEY="value" file: one assignment per line,
// blank and #-prefixed lines ignored, surrounding quotes stripped and
// escapes undone.
func ReadKVFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	vars := map[string]string{}
	s := bufio.NewScanner(file)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		vars[strings.TrimSpace(k)] = unescapeValue(strings.TrimSpace(v))
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

// SetKey upserts KEY="value" into a flat env-style file. An existing key is
// replaced in place, preserving comments, ordering and unknown lines; a new
// key is appended. The value is quoted and escaped so a value containing
// the delimiter or quote characters cannot corrupt the line structure.
// The write goes through the runner, so dry-run upserts mutate nothing.
func SetKey(run Runner, path, key, value string) error {
	return upsertFile(run, path, key, `"`+escapeValue(value)+`"`, "=")
}

// SetConfDirective upserts a space-delimited "key value" directive, the
// format of redis.conf and friends.
func SetConfDirective(run Runner, path, key, value string) error {
	return upsertFile(run, path, key, value, " ")
}

func upsertFile(run Runner, path, key, rendered, delim string) error {
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	updated := upsertContent(string(content), key, rendered, delim)
	return run.WriteFile(path, []byte(updated), 0o640)
}

func upsertContent(content, key, rendered, delim string) string {
	line := key + delim + rendered
	var lines []string
	if content != "" {
		lines = strings.Split(strings.TrimRight(content, "\n"), "\n")
	}

	replaced := false
	for i, l := range lines {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		k, _, ok := strings.Cut(trimmed, delim)
		if !ok || strings.TrimSpace(k) != key {
			continue
		}
		lines[i] = line
		replaced = true
	}
	if !replaced {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n") + "\n"
}

func escapeValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	// Line breaks would split the assignment across lines; keep every
	// value on one.
	v = strings.ReplaceAll(v, "\n", `\n`)
	return strings.ReplaceAll(v, "\r", `\r`)
}

func unescapeValue(v string) string {
	if len(v) < 2 || !strings.HasPrefix(v, `"`) || !strings.HasSuffix(v, `"`) {
		return v
	}
	v = v[1 : len(v)-1]
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		if v[i] == '\\' && i+1 < len(v) {
			i++
			switch v[i] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(v[i])
			}
			continue
		}
		b.WriteByte(v[i])
	}
	return b.String()
}

// readKVKey reads one key out of a flat env-style file without modifying
// it. Idempotency checks use this.
func readKVKey(path, key string) string {
	vars, err := ReadKVFile(path)
	if err != nil {
		return ""
	}
	return vars[key]
}
