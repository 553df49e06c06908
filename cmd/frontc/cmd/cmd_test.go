// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/frontc/cst"
)

// run executes the command line with args. Commands share flag state, so
// these tests do not run in parallel.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func write(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	config := write(t, dir, "frontc.yaml", "compact: true\n")
	good := write(t, dir, "good.fc", "a + b * c\n")

	stdout, _, err := run(t, "parse", "--config", config, "--emit", "sexpr", good)
	require.NoError(t, err)
	assert.Equal(t, "(Additive a + (Multiplicative b * c))\n", stdout)

	out := filepath.Join(dir, "out")
	_, _, err = run(t, "parse", "--config", config, "--emit", "proto", "-o", out, good)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(out, "good.fc.cst"))
	require.NoError(t, err)
	node, err := cst.Unmarshal(data, nil)
	require.NoError(t, err)
	assert.Equal(t, "(Additive a + (Multiplicative b * c))", node.String())

	_, _, err = run(t, "parse", "--config", config, "--emit", "xml", good)
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	config := write(t, dir, "frontc.toml", "compact = true\n")
	write(t, dir, "good.fc", "x = 1\n")
	bad := write(t, dir, "bad.fc", "a ;;; b ;;; c ;;; d\n")

	_, _, err := run(t, "check", "--config", config, "--werror=false", filepath.Join(dir, "good.fc"))
	require.NoError(t, err)

	_, stderr, err := run(t, "check", "--config", config, "--werror=false", filepath.Join(dir, "*.fc"))
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, bad)
	assert.Contains(t, stderr, "too many segment separators")
	assert.Contains(t, stderr, "1 of 2 files have errors")
}

func TestLexCommand(t *testing.T) {
	dir := t.TempDir()
	config := write(t, dir, "frontc.yaml", "{}\n")
	path := write(t, dir, "a.fc", "x = 1\n{ y }\n")

	plain, _, err := run(t, "lex", "--config", config, "--adapt=false", path)
	require.NoError(t, err)
	adapted, _, err := run(t, "lex", "--config", config, "--adapt", path)
	require.NoError(t, err)

	assert.Contains(t, plain, "Space")
	assert.NotContains(t, adapted, "Space")
	assert.Contains(t, adapted, `";"`)
}
