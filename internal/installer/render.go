package installer

import (
	"bytes"
	"text/template"
)

// renderData feeds the config-file templates. Fields cover every template;
// each one picks what it needs.
type renderData struct {
	Domain      string
	AppDir      string
	SubsDir     string
	WebUser     string
	PHPSocket   string
	CacheDir    string
	EnableSSL   bool
	AppName     string
	Command     string
	Procs       int
	LogFile     string
}

func renderString(content string, data renderData) (string, error) {
	tmpl, err := template.New("").Option("missingkey=error").Parse(content)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
