package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/helixml/docnav/domain/check"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(problems ...check.Problem) check.Report {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	return check.NewReport("run-1", []string{"v0.6", "v0.7"}, start, start.Add(250*time.Millisecond), 30, 12, problems)
}

func TestRecordCheck(t *testing.T) {
	c := New()

	dangling := check.NewProblem(check.KindDanglingLink, []string{"Documentation", "Usage"}, "/pages/usage", "page does not exist").
		WithVersion("v0.6")
	c.RecordCheck(report(dangling, dangling))
	c.RecordCheck(report())

	assert.Equal(t, 1.0, testutil.ToFloat64(c.checkRuns.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.checkRuns.WithLabelValues("ok")))
	assert.Equal(t, 60.0, testutil.ToFloat64(c.linksChecked))

	// The gauge reflects only the latest (clean) run.
	assert.Equal(t, 0.0, testutil.ToFloat64(c.problems.WithLabelValues("v0.6", string(check.KindDanglingLink))))
	assert.Equal(t, 2*len(check.Kinds()), testutil.CollectAndCount(c.problems))
}

func TestRecordCheck_CountsProblems(t *testing.T) {
	c := New()
	p := check.NewProblem(check.KindEmptyGroup, []string{"Parsing"}, "", "group has no items").WithVersion("v0.7")
	c.RecordCheck(report(p, p, p))

	assert.Equal(t, 3.0, testutil.ToFloat64(c.problems.WithLabelValues("v0.7", string(check.KindEmptyGroup))))
	assert.Equal(t, float64(report().FinishedAt().Unix()), testutil.ToFloat64(c.lastRun))
}

func TestRecordRequest(t *testing.T) {
	c := New()
	c.RecordRequest(http.MethodGet, "/api/v1/versions", http.StatusOK, 5*time.Millisecond)
	c.RecordRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/api/v1/versions", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestHandler(t *testing.T) {
	c := New()
	c.RecordCheck(report())

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "docnav_check_runs_total")
	assert.Contains(t, string(body), "go_goroutines")
}
