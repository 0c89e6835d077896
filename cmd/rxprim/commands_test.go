package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rxprim/internal/prim"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestTranslateText(t *testing.T) {
	out, _, err := run(t, "translate", "-c", "p2", "(a)*")
	require.NoError(t, err)
	assert.Equal(t, `(alt empty (seq (star (set 97)) (group "p2-1" (set 97))))`+"\n", out)
}

func TestTranslateManyPatternsNumbersContexts(t *testing.T) {
	out, _, err := run(t, "translate", "(a)", "(b)")
	require.NoError(t, err)
	assert.Equal(t, "# (a)\n(group \"re1-1\" (set 97))\n# (b)\n(group \"re2-1\" (set 98))\n", out)
}

func TestTranslateYAML(t *testing.T) {
	out, _, err := run(t, "translate", "-f", "yaml", "[^a-c]")
	require.NoError(t, err)
	assert.Equal(t, "kind: neg_set\ncodes: [97, 98, 99]\n", out)
}

func TestTranslateUnknownFormat(t *testing.T) {
	_, _, err := run(t, "translate", "-f", "xml", "a")
	assert.ErrorContains(t, err, "unknown format")
}

func TestTranslateStrictBackrefs(t *testing.T) {
	_, _, err := run(t, "translate", "--strict-backrefs", `(a)\2`)
	require.ErrorIs(t, err, prim.ErrDanglingBackref)

	out, _, err := run(t, "translate", `(a)\2`)
	require.NoError(t, err)
	assert.Contains(t, out, `(backref "re-2")`)
}

func TestTranslateVerboseLogs(t *testing.T) {
	_, stderr, err := run(t, "translate", "-v", "(a)")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "id=re-1")
}

func TestTranslateUnsupported(t *testing.T) {
	_, _, err := run(t, "translate", `(?>a)`)
	require.ErrorIs(t, err, prim.ErrUnsupportedConstruct)
}

func TestDot(t *testing.T) {
	out, _, err := run(t, "dot", "ab")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph G {")
	assert.Contains(t, out, `[label="a"]`)

	file := filepath.Join(t.TempDir(), "g.dot")
	_, _, err = run(t, "dot", "--nfa", "-o", file, "a|b")
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `[label="ε"]`)

	_, _, err = run(t, "dot", `(a)\1`)
	assert.Error(t, err)
}

func TestDotGroupsAndEmptyLanguage(t *testing.T) {
	out, _, err := run(t, "dot", "--nfa", "(a)")
	require.NoError(t, err)
	assert.Contains(t, out, `xlabel="(re-1"`)
	assert.Contains(t, out, `xlabel="re-1)"`)

	out, _, err = run(t, "dot", "[[:^ascii:]]")
	require.NoError(t, err)
	assert.Contains(t, out, "q0 [shape=circle];")
	assert.Contains(t, out, "_start -> q0;")
}

func TestEquiv(t *testing.T) {
	out, _, err := run(t, "equiv", "(a)*", "a*")
	require.NoError(t, err)
	assert.Equal(t, "equivalent\n", out)

	_, _, err = run(t, "equiv", "a*", "a+")
	assert.ErrorContains(t, err, "differ")
}
