package installer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport_DryRunPlaceholders(t *testing.T) {
	st, _ := testState(t, "full")

	r := BuildReport(st, nil)
	assert.Equal(t, "n/a (dry-run)", r.SupervisorStatus)
	assert.Equal(t, "n/a (dry-run)", r.NginxValid)
	assert.Contains(t, r.DBTarget, "local")
	assert.Contains(t, r.DBTarget, "3306")
}

func TestBuildReport_RemoteDBTarget(t *testing.T) {
	st, _ := testState(t, "app-web-subs-remote-db")
	st.Cfg.DBHost = "db.internal"

	r := BuildReport(st, nil)
	assert.Contains(t, r.DBTarget, "remote")
	assert.Contains(t, r.DBTarget, "db.internal")
}

func TestBuildReport_SubsystemsOffWhenDisabled(t *testing.T) {
	st, _ := testState(t, "db-only")

	r := BuildReport(st, nil)
	assert.Equal(t, "unavailable", r.SupervisorStatus, "no supervisor queries on a db host")
	assert.Equal(t, "unavailable", r.NginxValid)
}

func TestReportRender_Complete(t *testing.T) {
	st, _ := testState(t, "full")
	require.NoError(t, RunPipeline(st, Stages()))

	var out bytes.Buffer
	BuildReport(st, nil).Render(&out)

	s := out.String()
	assert.Contains(t, s, "nexus-setup: run complete")
	assert.Contains(t, s, "profile:          full")
	assert.Contains(t, s, st.Cfg.AppDir)
	assert.Contains(t, s, "log file:")
	assert.NotContains(t, s, "run aborted")
}

func TestReportRender_Failure(t *testing.T) {
	st, _ := testState(t, "full")

	var out bytes.Buffer
	BuildReport(st, errors.New("stage nginx: boom")).Render(&out)

	s := out.String()
	assert.Contains(t, s, "nexus-setup: run aborted")
	assert.Contains(t, s, "stage nginx: boom")
}

func TestReportRender_SkippedStages(t *testing.T) {
	st, _ := testState(t, "db-only")
	require.NoError(t, RunPipeline(st, Stages()))

	var out bytes.Buffer
	BuildReport(st, nil).Render(&out)

	s := out.String()
	assert.Contains(t, s, "skipped stages:")
	assert.Contains(t, s, "nginx")
	assert.Contains(t, s, "disabled by profile")
}
