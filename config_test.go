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

package frontc_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/frontc"
	"github.com/bufbuild/frontc/lexer"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	want := &frontc.Config{
		Language: "markdown",
		Semilit:  true,
		Jobs:     4,
		Compact:  true,
		Include:  []string{"src/**/*.fc"},
		Exclude:  []string{"**/vendor/**"},
	}

	yamlText := `
language: markdown
semilit: true
jobs: 4
compact: true
include: ["src/**/*.fc"]
exclude: ["**/vendor/**"]
`
	config, err := frontc.ParseConfig([]byte(yamlText), ".yaml")
	require.NoError(t, err)
	assert.Equal(t, want, config)

	tomlText := `
language = "markdown"
semilit = true
jobs = 4
compact = true
include = ["src/**/*.fc"]
exclude = ["**/vendor/**"]
`
	config, err = frontc.ParseConfig([]byte(tomlText), "toml")
	require.NoError(t, err)
	assert.Equal(t, want, config)

	config, err = frontc.ParseConfig(nil, ".yml")
	require.NoError(t, err)
	assert.Equal(t, new(frontc.Config), config)

	for _, tt := range []struct{ text, ext string }{
		{"colour: true", ".yaml"},
		{"colour = true", ".toml"},
		{"language: cobol", ".yaml"},
		{"jobs = -1", ".toml"},
		{`include = ["[a"]`, ".toml"},
		{"jobs: 1", ".json"},
	} {
		_, err := frontc.ParseConfig([]byte(tt.text), tt.ext)
		assert.Error(t, err, "%q", tt.text)
	}
}

func TestConfigOptions(t *testing.T) {
	t.Parallel()

	config := &frontc.Config{Semilit: true}
	assert.Equal(t, lexer.Standalone, config.Options("a.fc").Language)
	assert.Equal(t, lexer.MarkdownEmbedded, config.Options("a.fc.md").Language)
	assert.True(t, config.Options("a.fc").SemilitParagraphs)

	config.Language = "standalone"
	assert.Equal(t, lexer.Standalone, config.Options("a.fc.md").Language)
}

func TestConfigFiles(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"main.fc":             {},
		"docs/guide.fc.md":    {},
		"docs/readme.md":      {},
		"lib/util.fc":         {},
		"lib/vendor/dep.fc":   {},
		"lib/vendor/notes.md": {},
	}

	files, err := new(frontc.Config).Files(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/guide.fc.md", "lib/util.fc", "lib/vendor/dep.fc", "main.fc"}, files)

	config := &frontc.Config{
		Include: []string{"lib/**/*.fc", "**/*.fc"},
		Exclude: []string{"**/vendor/**"},
	}
	files, err = config.Files(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/util.fc", "main.fc"}, files)
}

func TestFindConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	_, ok := frontc.FindConfig(nested)
	assert.False(t, ok)

	path := filepath.Join(root, "a", "frontc.toml")
	require.NoError(t, os.WriteFile(path, []byte("jobs = 2\n"), 0o600))

	found, ok := frontc.FindConfig(nested)
	require.True(t, ok)
	assert.Equal(t, path, found)

	config, err := frontc.LoadConfig(found)
	require.NoError(t, err)
	assert.Equal(t, 2, config.Jobs)

	_, err = frontc.LoadConfig(filepath.Join(root, "missing.yaml"))
	assert.Error(t, err)
}
