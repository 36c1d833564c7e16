package installer

import (
	"os"
	"strings"
)

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// fileContainsLine reports whether any line of the file matches exactly,
// ignoring leading/trailing whitespace. A missing file counts as "no".
func fileContainsLine(path, line string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	want := strings.TrimSpace(line)
	for _, l := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(l) == want {
			return true
		}
	}
	return false
}

// fileContainsString reports whether the file contains the substring.
func fileContainsString(path, substr string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(string(content), substr)
}

// shellQuote single-quotes a value for safe interpolation into a shell
// command line.
func shellQuote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}
