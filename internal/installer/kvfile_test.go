package installer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRunner(t *testing.T, dry bool) (Runner, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewRunner(NewRunLog(&buf, &buf), dry), &buf
}

func TestSetKey_CreatesFile(t *testing.T) {
	run, _ := testRunner(t, false)
	path := filepath.Join(t.TempDir(), "app.env")

	require.NoError(t, SetKey(run, path, "APP_ENV", "production"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "APP_ENV=\"production\"\n", string(got))
}

func TestSetKey_ReplacesInPlace(t *testing.T) {
	run, _ := testRunner(t, false)
	path := filepath.Join(t.TempDir(), "app.env")
	seed := "# deployment settings\nAPP_ENV=\"local\"\nAPP_DEBUG=\"true\"\n\nCUSTOM=keepme\n"
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o640))

	require.NoError(t, SetKey(run, path, "APP_ENV", "production"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "# deployment settings\nAPP_ENV=\"production\"\nAPP_DEBUG=\"true\"\n\nCUSTOM=keepme\n"
	assert.Equal(t, want, string(got), "comments, blanks and unknown lines survive the upsert")
}

func TestSetKey_AppendsUnknownKey(t *testing.T) {
	run, _ := testRunner(t, false)
	path := filepath.Join(t.TempDir(), "app.env")
	require.NoError(t, os.WriteFile(path, []byte("APP_ENV=\"local\"\n"), 0o640))

	require.NoError(t, SetKey(run, path, "QUEUE_CONNECTION", "redis"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "APP_ENV=\"local\"\nQUEUE_CONNECTION=\"redis\"\n", string(got))
}

// A value holding the delimiter, quotes or backslashes must not corrupt
// the line structure, and must read back byte-identical.
func TestSetKey_EscapingRoundTrip(t *testing.T) {
	run, _ := testRunner(t, false)
	path := filepath.Join(t.TempDir(), "app.env")

	values := map[string]string{
		"WITH_EQUALS":    "a=b=c",
		"WITH_QUOTES":    `say "hi"`,
		"WITH_BACKSLASH": `C:\temp\x`,
		"WITH_HASH":      "not # a comment",
		"EMPTY":          "",
	}
	for k, v := range values {
		require.NoError(t, SetKey(run, path, k, v))
	}

	got, err := ReadKVFile(path)
	require.NoError(t, err)
	for k, v := range values {
		assert.Equal(t, v, got[k], "key %s", k)
	}
}

// A value with embedded line breaks must stay on one physical line, or
// the rest of it would parse as separate assignments on the next read.
func TestSetKey_NewlineValueStaysOneLine(t *testing.T) {
	run, _ := testRunner(t, false)
	path := filepath.Join(t.TempDir(), "app.env")

	require.NoError(t, SetKey(run, path, "MOTD", "line one\nline two\r\nline three"))
	require.NoError(t, SetKey(run, path, "APP_ENV", "production"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(raw), "\n"), "one line per key")

	got, err := ReadKVFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\r\nline three", got["MOTD"])
	assert.Equal(t, "production", got["APP_ENV"])
}

func TestSetKey_DryRunWritesNothing(t *testing.T) {
	run, buf := testRunner(t, true)
	path := filepath.Join(t.TempDir(), "app.env")

	require.NoError(t, SetKey(run, path, "APP_ENV", "production"))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "dry-run must not create the file")
	assert.Contains(t, buf.String(), "would write")
}

func TestSetConfDirective_SpaceDelimited(t *testing.T) {
	run, _ := testRunner(t, false)
	path := filepath.Join(t.TempDir(), "redis.conf")
	seed := "# redis\nmaxmemory 64mb\nmaxmemory-policy noeviction\n"
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o640))

	require.NoError(t, SetConfDirective(run, path, "maxmemory", "256mb"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# redis\nmaxmemory 256mb\nmaxmemory-policy noeviction\n", string(got))
}

func TestReadKVFile_SkipsCommentsAndBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "install.conf")
	content := "# header comment\n\nDOMAIN=\"nexus.example.com\"\nbroken line without delimiter\nDB_PORT=\"3306\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	got, err := ReadKVFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"DOMAIN":  "nexus.example.com",
		"DB_PORT": "3306",
	}, got)
}

func TestReadKVFile_MissingFile(t *testing.T) {
	_, err := ReadKVFile(filepath.Join(t.TempDir(), "nope.conf"))
	assert.True(t, os.IsNotExist(err))
}
