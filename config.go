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

package frontc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/frontc/lexer"
)

// ConfigNames are the file names [FindConfig] looks for, in order.
var ConfigNames = []string{"frontc.yaml", "frontc.yml", "frontc.toml"}

// Config is the configuration of a project.
type Config struct {
	// The host format of source files: "standalone" or "markdown". If empty,
	// it is chosen per file by extension.
	Language string `yaml:"language" toml:"language"`
	// Record markdown prose paragraphs as comments.
	Semilit bool `yaml:"semilit" toml:"semilit"`
	// Number of files parsed at once. Zero means one per CPU.
	Jobs int `yaml:"jobs" toml:"jobs"`
	// Diagnostic rendering.
	Color   bool `yaml:"color" toml:"color"`
	Compact bool `yaml:"compact" toml:"compact"`

	// Globs of files to process when none are named explicitly, and globs
	// of files to skip.
	Include []string `yaml:"include" toml:"include"`
	Exclude []string `yaml:"exclude" toml:"exclude"`
}

// DefaultInclude is used when a [Config] has no Include globs.
var DefaultInclude = []string{"**/*.fc", "**/*.fc.md"}

// LoadConfig reads a configuration file. The format is chosen by extension.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// ParseConfig parses configuration text in the format named by ext, which
// is a file extension such as ".yaml" or ".toml".
func ParseConfig(data []byte, ext string) (*Config, error) {
	config := new(Config)
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case "toml":
		md, err := toml.Decode(string(data), config)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown configuration key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unknown configuration format %q", ext)
	}

	if _, err := lexer.ParseLanguage(config.Language); err != nil {
		return nil, err
	}
	if config.Jobs < 0 {
		return nil, fmt.Errorf("jobs must not be negative, got %d", config.Jobs)
	}
	for _, glob := range slices.Concat(config.Include, config.Exclude) {
		if !doublestar.ValidatePattern(glob) {
			return nil, fmt.Errorf("invalid glob %q", glob)
		}
	}
	return config, nil
}

// FindConfig looks for a configuration file in dir and each of its parents.
func FindConfig(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		for _, name := range ConfigNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Options returns parse options for the file at path.
func (c *Config) Options(path string) Options {
	// ParseConfig has already validated the language.
	language, _ := lexer.ParseLanguage(c.Language)
	if c.Language == "" && strings.HasSuffix(path, ".md") {
		language = lexer.MarkdownEmbedded
	}
	return Options{
		Language:          language,
		SemilitParagraphs: c.Semilit,
	}
}

// Files returns the paths in fsys matched by this configuration's globs,
// sorted.
func (c *Config) Files(fsys fs.FS) ([]string, error) {
	include := c.Include
	if len(include) == 0 {
		include = DefaultInclude
	}

	seen := make(map[string]struct{})
	var out []string
	for _, glob := range include {
		matches, err := doublestar.Glob(fsys, glob, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		for _, path := range matches {
			if _, ok := seen[path]; ok || c.excluded(path) {
				continue
			}
			seen[path] = struct{}{}
			out = append(out, path)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (c *Config) excluded(path string) bool {
	for _, glob := range c.Exclude {
		if doublestar.MatchUnvalidated(glob, path) {
			return true
		}
	}
	return false
}
