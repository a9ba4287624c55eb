package report_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticktac-project/tchecker/report"
)

func TestReporterCountsAndSummary(t *testing.T) {
	var buf bytes.Buffer
	r := report.New(&buf)

	r.Errorf("weakly synchronized event has a guard")
	r.Warningf("unused clock %q", "y")

	assert.Equal(t, 1, r.Errors())
	assert.Equal(t, 1, r.Warnings())
	assert.True(t, r.HasErrors())
	assert.Equal(t, "1 error, 1 warning", r.Summary())

	out := buf.String()
	assert.True(t, strings.Contains(out, "ERROR, weakly synchronized event has a guard"))
	assert.True(t, strings.Contains(out, `WARNING, unused clock "y"`))
}

func TestReporterNoErrorsSummary(t *testing.T) {
	r := report.New(&bytes.Buffer{})
	assert.False(t, r.HasErrors())
	assert.Equal(t, "0 errors, 0 warnings", r.Summary())
}

func TestReportWrapsErrorKind(t *testing.T) {
	var buf bytes.Buffer
	r := report.New(&buf)

	cause := errors.New("unknown process P3")
	err := report.NewKindError(report.KindConfiguration, cause)
	r.Report(report.Error, err)

	kind, ok := report.AsKindError(err)
	require.True(t, ok)
	assert.Equal(t, report.KindConfiguration, kind)
	assert.True(t, strings.Contains(buf.String(), "unknown process P3"))
}
