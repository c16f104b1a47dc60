package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const diamondFixture = `{
  "entry": 0,
  "dead": 99,
  "blocks": [
    {"id": 0, "outerLoops": 0, "cond": {"id": 1, "text": "cond"}, "thenb": 1, "elseb": 2},
    {"id": 1, "outerLoops": 0, "thenb": 3, "elseb": 3,
     "exprs": [{"bind": {"id": 2, "text": "a"}, "op": "intLit", "intValue": 1}]},
    {"id": 2, "outerLoops": 0, "thenb": 3, "elseb": 3,
     "exprs": [{"bind": {"id": 3, "text": "b"}, "op": "intLit", "intValue": 2}]},
    {"id": 3, "outerLoops": 0, "thenb": 99, "elseb": 99,
     "exprs": [{"bind": {"id": 4, "text": "r", "synthetic": true}, "op": "ident", "what": {"id": 2, "text": "a"}},
               {"bind": {"id": 5, "text": "_"}, "op": "return", "what": {"id": 4, "text": "r", "synthetic": true}}]},
    {"id": 99, "outerLoops": 0, "thenb": 99, "elseb": 99}
  ]
}`

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "diamond.json")
	require.NoError(t, os.WriteFile(path, []byte(diamondFixture), 0o644))
	return path
}

func TestDoMain_TextFormat(t *testing.T) {
	path := writeFixture(t)

	var stdOut, stdErr bytes.Buffer
	var exitCode int
	doMain([]string{path}, &stdOut, &stdErr, func(code int) { exitCode = code })

	require.Equal(t, 0, exitCode)
	require.Empty(t, stdErr.String())
	require.Contains(t, stdOut.String(), "(entry)")
	require.Contains(t, stdOut.String(), "(dead)")
}

func TestDoMain_JSONFormat(t *testing.T) {
	path := writeFixture(t)

	var stdOut, stdErr bytes.Buffer
	var exitCode int
	doMain([]string{"-json", path}, &stdOut, &stdErr, func(code int) { exitCode = code })

	require.Equal(t, 0, exitCode)
	require.Empty(t, stdErr.String())
	require.Contains(t, stdOut.String(), `"id": 0`)
}

func TestDoMain_MissingArgExits2(t *testing.T) {
	var stdOut, stdErr bytes.Buffer
	var exitCode int
	doMain(nil, &stdOut, &stdErr, func(code int) { exitCode = code })

	require.Equal(t, 2, exitCode)
	require.NotEmpty(t, stdErr.String())
}

func TestDoMain_UnreadableFileExits1(t *testing.T) {
	var stdOut, stdErr bytes.Buffer
	var exitCode int
	doMain([]string{filepath.Join(t.TempDir(), "missing.json")}, &stdOut, &stdErr, func(code int) { exitCode = code })

	require.Equal(t, 1, exitCode)
	require.NotEmpty(t, stdErr.String())
}
