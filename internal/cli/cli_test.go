// SPDX-License-Identifier: MIT

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/csrkit/tensor"
)

const fixtureEdges = `# row col
0 1
0 0
1 2

3 3
3 1
`

// runCLI executes the command tree with args and returns stdout and log output.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return out.String(), logs.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

func TestBuildInspect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	edges := writeFile(t, dir, "edges.txt", fixtureEdges)
	bin := filepath.Join(dir, "g.csr")

	_, logs, err := runCLI(t, "build", edges, bin, "--rows", "4", "--cols", "4")
	require.NoError(t, err)
	require.Contains(t, logs, "built")

	out, _, err := runCLI(t, "inspect", bin)
	require.NoError(t, err)
	require.Contains(t, out, "shape: 4x4")
	require.Contains(t, out, "nnz: 5")
	require.Contains(t, out, "dtype: int64")
	require.Contains(t, out, "sorted (scan): false")
	require.Contains(t, out, "duplicates: false")

	sorted := filepath.Join(dir, "sorted.csr")
	_, _, err = runCLI(t, "sort", bin, sorted)
	require.NoError(t, err)
	out, _, err = runCLI(t, "inspect", sorted)
	require.NoError(t, err)
	require.Contains(t, out, "sorted flag: true")
	require.Contains(t, out, "sorted (scan): true")
}

func TestSimplifyAndTranspose(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	edges := writeFile(t, dir, "edges.txt", "0 1\n0 1\n1 0\n")
	bin := filepath.Join(dir, "g.csr")
	_, _, err := runCLI(t, "build", edges, bin)
	require.NoError(t, err)

	out, _, err := runCLI(t, "inspect", bin)
	require.NoError(t, err)
	require.Contains(t, out, "shape: 2x2")
	require.Contains(t, out, "duplicates: true")

	simple := filepath.Join(dir, "simple.csr")
	_, logs, err := runCLI(t, "-v", "simplify", bin, simple)
	require.NoError(t, err)
	require.Contains(t, logs, "collapsed")
	out, _, err = runCLI(t, "inspect", simple)
	require.NoError(t, err)
	require.Contains(t, out, "nnz: 2")
	require.Contains(t, out, "duplicates: false")

	tr := filepath.Join(dir, "t.csr")
	_, _, err = runCLI(t, "transpose", bin, tr)
	require.NoError(t, err)
	out, _, err = runCLI(t, "inspect", tr)
	require.NoError(t, err)
	require.Contains(t, out, "nnz: 3")
}

func TestSample(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bin := filepath.Join(dir, "g.csr")
	_, _, err := runCLI(t, "build", writeFile(t, dir, "edges.txt", fixtureEdges), bin, "--rows", "4", "--cols", "4")
	require.NoError(t, err)

	out, _, err := runCLI(t, "sample", bin, "--fanout", "2", "--replace", "--rows", "0,3", "--seed", "7")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)

	again, _, err := runCLI(t, "sample", bin, "--fanout", "2", "--replace", "--rows", "0,3", "--seed", "7")
	require.NoError(t, err)
	require.Equal(t, out, again)

	_, _, err = runCLI(t, "sample", bin, "--rows", "9")
	require.Error(t, err)
}

func TestNegative(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bin := filepath.Join(dir, "g.csr")
	_, _, err := runCLI(t, "build", writeFile(t, dir, "edges.txt", fixtureEdges), bin, "--rows", "4", "--cols", "4")
	require.NoError(t, err)

	out, _, err := runCLI(t, "negative", bin, "-n", "3", "--seed", "5")
	require.NoError(t, err)
	existing := map[string]bool{"0 1": true, "0 0": true, "1 2": true, "3 3": true, "3 1": true}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		require.False(t, existing[line], "negative %q is an entry", line)
		f := strings.Fields(line)
		require.NotEqual(t, f[0], f[1], "self loop %q", line)
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	grid := filepath.Join(dir, "grid.csr")
	_, logs, err := runCLI(t, "generate", grid, "--kind", "grid", "-n", "6", "--grid-rows", "2", "--undirected")
	require.NoError(t, err)
	require.Contains(t, logs, "generated")
	out, _, err := runCLI(t, "inspect", grid)
	require.NoError(t, err)
	require.Contains(t, out, "shape: 6x6")
	require.Contains(t, out, "nnz: 14")
	require.Contains(t, out, "sorted flag: true")

	multi := filepath.Join(dir, "multi.csr")
	_, _, err = runCLI(t, "generate", multi, "--kind", "fanout", "-n", "4", "--fanout", "6", "--seed", "3")
	require.NoError(t, err)
	out, _, err = runCLI(t, "inspect", multi)
	require.NoError(t, err)
	require.Contains(t, out, "nnz: 24")
	require.Contains(t, out, "duplicates: true")

	_, _, err = runCLI(t, "generate", filepath.Join(dir, "x.csr"), "--kind", "torus")
	require.ErrorContains(t, err, "unknown kind")
	_, _, err = runCLI(t, "generate", filepath.Join(dir, "x.csr"), "--kind", "grid", "-n", "5", "--grid-rows", "2")
	require.Error(t, err)
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, _, err := runCLI(t, "build", writeFile(t, dir, "bad.txt", "0 x\n"), filepath.Join(dir, "o.csr"))
	require.Error(t, err)

	_, _, err = runCLI(t, "build", writeFile(t, dir, "short.txt", "7\n"), filepath.Join(dir, "o.csr"))
	require.Error(t, err)

	_, _, err = runCLI(t, "inspect", writeFile(t, dir, "junk.csr", "not a matrix"))
	require.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name string
		file string
		body string
		want func(t *testing.T, c Config)
		err  bool
	}{
		{
			name: "yaml",
			file: "c.yaml",
			body: "dtype: int32\nseed: 42\nfanout: 5\nreplace: true\nworkers: 2\nblock_rows: 64\n",
			want: func(t *testing.T, c Config) {
				require.Equal(t, "int32", c.DType)
				require.Equal(t, uint64(42), c.Seed)
				require.Equal(t, 5, c.Fanout)
				require.True(t, c.Replace)
				require.Equal(t, 2, c.Workers)
				require.Equal(t, 64, c.BlockRows)
			},
		},
		{
			name: "toml keeps defaults",
			file: "c.toml",
			body: "trials = 7\nredundancy = 2.5\n",
			want: func(t *testing.T, c Config) {
				require.Equal(t, 7, c.Trials)
				require.InDelta(t, 2.5, c.Redundancy, 1e-12)
				require.Equal(t, tensor.Int64.String(), c.DType)
				require.Equal(t, 256, c.BlockRows)
			},
		},
		{name: "unknown extension", file: "c.json", body: "{}", err: true},
		{name: "bad dtype", file: "d.yaml", body: "dtype: int16\n", err: true},
		{name: "bad block rows", file: "b.toml", body: "block_rows = 0\n", err: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := loadConfig(writeFile(t, dir, tc.file, tc.body))
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.want(t, cfg)
		})
	}

	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)
}

func TestConfigFlag_Int32Build(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	conf := writeFile(t, dir, "csr.toml", "dtype = \"int32\"\n")
	bin := filepath.Join(dir, "g.csr")
	_, _, err := runCLI(t, "--config", conf, "build", writeFile(t, dir, "edges.txt", fixtureEdges), bin)
	require.NoError(t, err)

	out, _, err := runCLI(t, "inspect", bin)
	require.NoError(t, err)
	require.Contains(t, out, "dtype: int32")
}

func TestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	l.Debug("hidden")
	require.Zero(t, buf.Len())

	ctx := withLogger(context.Background(), l)
	require.Same(t, l, loggerFromContext(ctx))
	require.NotNil(t, loggerFromContext(context.Background()))

	newProgress(l).done("finished", "items", 3)
	require.Contains(t, buf.String(), "finished")
	require.Contains(t, buf.String(), "elapsed")
}
