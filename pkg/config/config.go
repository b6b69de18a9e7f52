// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/tokenremap/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte, filename string) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	Target   string `json:"target,omitempty" yaml:"target,omitempty" hcl:"target,optional"`       // File to rewrite
	Strategy string `json:"strategy,omitempty" yaml:"strategy,omitempty" hcl:"strategy,optional"` // simultaneous or sequential
	Debug    bool   `json:"debug,omitempty" yaml:"debug,omitempty" hcl:"debug,optional"`          // Enable debug logging

	location string
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data, filepath.Base(path))
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	// Relative targets are relative to the config file
	if cfg.Target != "" && !filepath.IsAbs(cfg.Target) {
		cfg.Target = filepath.Join(filepath.Dir(path), cfg.Target)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if _, err := text.NewReplacer(cfg.Strategy); err != nil {
		return errors.Errorf("strategy: %w", err)
	}

	// Clean up paths
	if cfg.Target != "" {
		cfg.Target = filepath.Clean(cfg.Target)
	}

	// Set defaults
	if cfg.Strategy == "" {
		cfg.Strategy = text.StrategySimultaneous
	}

	return nil
}

// Location is the file the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	target := cfg.Target
	if target == "" {
		target = "<unset>"
	}
	strategy := cfg.Strategy
	if strategy == "" {
		strategy = text.StrategySimultaneous
	}
	return fmt.Sprintf("%s (%s)", target, strategy)
}
