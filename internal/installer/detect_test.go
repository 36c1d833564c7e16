package installer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOSRelease(t *testing.T, content string) Paths {
	t.Helper()
	dir := t.TempDir()
	p := Paths{
		OSRelease:  filepath.Join(dir, "os-release"),
		PasswdFile: filepath.Join(dir, "passwd"),
	}
	require.NoError(t, os.WriteFile(p.OSRelease, []byte(content), 0o644))
	return p
}

func TestDetect_Ubuntu(t *testing.T) {
	p := writeOSRelease(t, "NAME=\"Ubuntu\"\nID=ubuntu\nID_LIKE=debian\nVERSION_ID=\"24.04\"\n")

	sys, err := Detect(p)
	require.NoError(t, err)
	assert.Equal(t, FamilyDebian, sys.Family)
	assert.Contains(t, sys.PkgInstall, "apt-get install")
	assert.Contains(t, sys.PkgUpdate, "DEBIAN_FRONTEND=noninteractive")
}

func TestDetect_Rocky(t *testing.T) {
	p := writeOSRelease(t, "NAME=\"Rocky Linux\"\nID=\"rocky\"\nID_LIKE=\"rhel centos fedora\"\n")

	sys, err := Detect(p)
	require.NoError(t, err)
	assert.Equal(t, FamilyRHEL, sys.Family)
	assert.Contains(t, sys.PkgInstall, "dnf install")
}

func TestDetect_DerivativeViaIDLike(t *testing.T) {
	p := writeOSRelease(t, "ID=linuxmint\nID_LIKE=\"ubuntu debian\"\n")

	sys, err := Detect(p)
	require.NoError(t, err)
	assert.Equal(t, FamilyDebian, sys.Family)
}

func TestDetect_Unsupported(t *testing.T) {
	p := writeOSRelease(t, "ID=alpine\nID_LIKE=\n")

	_, err := Detect(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alpine")
}

func TestDetect_MissingFile(t *testing.T) {
	p := Paths{OSRelease: filepath.Join(t.TempDir(), "nope")}
	_, err := Detect(p)
	assert.Error(t, err)
}

func TestDetectWebUser_PrefersWWWData(t *testing.T) {
	p := writeOSRelease(t, "ID=ubuntu\n")
	passwd := "root:x:0:0:root:/root:/bin/bash\nnginx:x:998:996::/var/lib/nginx:/sbin/nologin\nwww-data:x:33:33::/var/www:/usr/sbin/nologin\n"
	require.NoError(t, os.WriteFile(p.PasswdFile, []byte(passwd), 0o644))

	var buf bytes.Buffer
	got := DetectWebUser(p, NewRunLog(&buf, &buf))
	assert.Equal(t, "www-data", got)
}

func TestDetectWebUser_FallsBackToNginx(t *testing.T) {
	p := writeOSRelease(t, "ID=rocky\n")
	passwd := "root:x:0:0:root:/root:/bin/bash\nnginx:x:998:996::/var/lib/nginx:/sbin/nologin\n"
	require.NoError(t, os.WriteFile(p.PasswdFile, []byte(passwd), 0o644))

	var buf bytes.Buffer
	got := DetectWebUser(p, NewRunLog(&buf, &buf))
	assert.Equal(t, "nginx", got)
}

func TestDetectWebUser_DefaultWithWarning(t *testing.T) {
	p := writeOSRelease(t, "ID=ubuntu\n")
	require.NoError(t, os.WriteFile(p.PasswdFile, []byte("root:x:0:0::/root:/bin/bash\n"), 0o644))

	var buf bytes.Buffer
	got := DetectWebUser(p, NewRunLog(&buf, &buf))
	assert.Equal(t, "www-data", got)
	assert.Contains(t, buf.String(), "[WARN]")
}
