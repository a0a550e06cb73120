package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.ObserveSet(6, 2)
	c.ObserveVerdict(true)
	c.ObserveVerdict(true)
	c.ObserveVerdict(false)
	c.ObserveRequest("read")

	assert.Equal(t, 6.0, testutil.ToFloat64(c.InputDomains))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.SetSize))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Queries.WithLabelValues("blocked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Queries.WithLabelValues("allowed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Requests.WithLabelValues("read")))
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.ObserveSet(1, 1)
	c.ObserveVerdict(true)
	c.ObserveRequest("cheer")
}

func TestWriteToTextfile(t *testing.T) {
	c := NewCollector()
	c.ObserveVerdict(false)
	filename := filepath.Join(t.TempDir(), "ts.prom")
	require.NoError(t, c.WriteToTextfile(filename))
	raw, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `ts_domains_domain_queries_total{verdict="allowed"} 1`)
}
