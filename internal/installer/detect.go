package installer

import (
	"fmt"
	"os"
	"strings"
)

type PackageFamily string

const (
	FamilyDebian PackageFamily = "debian"
	FamilyRHEL   PackageFamily = "rhel"
)

// SysInfo is the detected host identity: which package manager family to
// drive and which service account the web server runs as.
type SysInfo struct {
	Family     PackageFamily
	PkgUpdate  string
	PkgInstall string
	WebUser    string
}

// Detect parses the os-release file and maps the host onto a supported
// package family. An unreadable file or an unrecognised distribution is
// fatal: every later stage depends on knowing how to install packages.
func Detect(p Paths) (SysInfo, error) {
	data, err := os.ReadFile(p.OSRelease)
	if err != nil {
		return SysInfo{}, fmt.Errorf("cannot identify host OS (%s): %w", p.OSRelease, err)
	}
	id, like := parseOSRelease(string(data))
	family, err := classifyFamily(id, like)
	if err != nil {
		return SysInfo{}, err
	}

	sys := SysInfo{Family: family}
	switch family {
	case FamilyDebian:
		sys.PkgUpdate = "DEBIAN_FRONTEND=noninteractive apt-get update -y"
		sys.PkgInstall = "DEBIAN_FRONTEND=noninteractive apt-get install -y"
	case FamilyRHEL:
		sys.PkgUpdate = "dnf makecache -y"
		sys.PkgInstall = "dnf install -y"
	}
	return sys, nil
}

func parseOSRelease(content string) (id string, like string) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		v = strings.Trim(v, `"`)
		switch k {
		case "ID":
			id = strings.ToLower(v)
		case "ID_LIKE":
			like = strings.ToLower(v)
		}
	}
	return id, like
}

func classifyFamily(id, like string) (PackageFamily, error) {
	haystack := id + " " + like
	for _, marker := range []string{"debian", "ubuntu"} {
		if strings.Contains(haystack, marker) {
			return FamilyDebian, nil
		}
	}
	for _, marker := range []string{"rhel", "fedora", "centos", "rocky", "almalinux"} {
		if strings.Contains(haystack, marker) {
			return FamilyRHEL, nil
		}
	}
	return "", fmt.Errorf("unsupported OS: id=%q id_like=%q (need a Debian- or RedHat-like host)", id, like)
}

// webUserCandidates is probed in priority order.
var webUserCandidates = []string{"www-data", "nginx", "apache", "http"}

// DetectWebUser returns the first conventional web service account present
// in the passwd file. It never fails: with no match it warns and falls
// back to www-data.
func DetectWebUser(p Paths, log *RunLog) string {
	for _, name := range webUserCandidates {
		if passwdHasUser(p.PasswdFile, name) {
			return name
		}
	}
	log.Warnf("no conventional web service account found, defaulting to www-data")
	return "www-data"
}

func passwdHasUser(path, name string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(content), "\n") {
		if user, _, ok := strings.Cut(line, ":"); ok && user == name {
			return true
		}
	}
	return false
}
