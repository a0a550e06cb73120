package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	root := newRootCmd(strings.NewReader(stdin), stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDomainsCmd(t *testing.T) {
	input := "4\nabc.com\ng.dec.com\nyandex.ru\ngoogle.ru\n" +
		"9\ncom\nacb.com\ndec.com\nyandex.com\nru.google\nabc.com\ne.r.f.g.dec.com\nyandex.yandex.ru\nnot.google.ru\n"
	stdout, _, err := run(t, input, "domains")
	require.NoError(t, err)
	assert.Equal(t, "Good\nGood\nGood\nGood\nGood\nBad\nBad\nBad\nBad\n", stdout)
}

func TestDomainsCmdWithConfig(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "list.txt")
	require.NoError(t, os.WriteFile(list, []byte("||blocked.org^\n"), 0644))
	conf := filepath.Join(dir, "ts.toml")
	text := "log_level = \"info\"\nblock_files = [\"" + list + "\"]\n[output]\nblocked = \"X\"\nallowed = \"O\"\n"
	require.NoError(t, os.WriteFile(conf, []byte(text), 0644))
	prom := filepath.Join(dir, "ts.prom")

	stdout, stderr, err := run(t, "1\nabc.com\n3\nabc.com\nwww.blocked.org\nfree.org\n",
		"domains", "-c", conf, "--metrics-file", prom)
	require.NoError(t, err)
	assert.Equal(t, "X\nX\nO\n", stdout)
	assert.Contains(t, stderr, "domain set built")

	raw, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `ts_domains_domain_queries_total{verdict="blocked"} 2`)
	assert.Contains(t, string(raw), "ts_domains_blocklist_retained_domains 2")
}

func TestDomainsCmdErrors(t *testing.T) {
	_, stderr, err := run(t, "2\nabc.com\n", "domains")
	assert.Error(t, err)
	assert.Contains(t, stderr, "malformed input")

	_, _, err = run(t, "", "domains", "-c", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, _, err = run(t, "0\n0\n", "domains", "--log-level", "loud")
	assert.Error(t, err)

	_, _, err = run(t, "", "domains", "extra-arg")
	assert.Error(t, err)
}

func TestMotivatorCmd(t *testing.T) {
	input := "12\nCHEER 5\nREAD 1 10\nCHEER 1\nREAD 2 5\nREAD 3 7\nCHEER 2\nCHEER 3\n" +
		"READ 3 10\nCHEER 3\nREAD 3 11\nCHEER 3\nCHEER 1\n"
	stdout, _, err := run(t, input, "motivator", "--log-level", "debug")
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n0\n0.5\n0.5\n1\n0.5\n", stdout)

	_, _, err = run(t, "1\nREAD 1 5000\n", "motivator")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, VERSION)
}
