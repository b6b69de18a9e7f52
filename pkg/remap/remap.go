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

// Package remap rewrites a single source file in place using a text.Replacer.
//
// The file is read fully into memory, must decode as UTF-8, and is written
// back to the same path. The write is not atomic: a failure halfway through
// can leave the file truncated.
package remap

import (
	"bytes"
	"context"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/tokenremap/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidUTF8 is returned when the target file is not valid UTF-8
var ErrInvalidUTF8 = errors.Base("file is not valid UTF-8")

// 🔧 Options configures a Remapper
type Options struct {
	// Replacer applies the rules; defaults to the simultaneous replacer
	Replacer text.Replacer

	// Rules defaults to text.FontSizeRules
	Rules []text.Rule

	// Strategy names the replacer in reports; inferred from Replacer when empty
	Strategy string
}

// 📄 RuleCount is the number of matches for one rule
type RuleCount struct {
	Rule  text.Rule
	Count int
}

// 📊 Report describes one remap of one file
type Report struct {
	Path         string
	Strategy     string
	Counts       []RuleCount
	Replacements int
	Modified     bool
	Written      bool
	SizeBefore   int
	SizeAfter    int
}

// 🎯 Remapper rewrites tokens in a file
type Remapper struct {
	replacer text.Replacer
	rules    []text.Rule
	strategy string
}

// 🏭 New creates a Remapper, filling defaults for empty options
func New(opts Options) (*Remapper, error) {
	if opts.Replacer == nil {
		opts.Replacer = text.NewSimultaneousReplacer()
	}
	if opts.Rules == nil {
		opts.Rules = text.FontSizeRules()
	}
	if opts.Strategy == "" {
		opts.Strategy = strategyOf(opts.Replacer)
	}
	if err := opts.Replacer.ValidateRules(opts.Rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}
	return &Remapper{
		replacer: opts.Replacer,
		rules:    opts.Rules,
		strategy: opts.Strategy,
	}, nil
}

func strategyOf(r text.Replacer) string {
	if _, ok := r.(*text.SequentialReplacer); ok {
		return text.StrategySequential
	}
	return text.StrategySimultaneous
}

// Remap reads path, applies the rules and overwrites path with the result.
// The file is written even when nothing matched.
func (r *Remapper) Remap(ctx context.Context, path string) (*Report, error) {
	report, content, mode, err := r.run(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, content, mode); err != nil {
		return nil, errors.Errorf("writing %s: %w", path, err)
	}
	report.Written = true

	zerolog.Ctx(ctx).Info().
		Str("path", path).
		Str("strategy", report.Strategy).
		Int("replacements", report.Replacements).
		Bool("modified", report.Modified).
		Msg("remapped file")

	return report, nil
}

// Check runs the same pipeline as Remap without writing anything
func (r *Remapper) Check(ctx context.Context, path string) (*Report, error) {
	report, _, _, err := r.run(ctx, path)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("replacements", report.Replacements).
		Msg("checked file")

	return report, nil
}

func (r *Remapper) run(ctx context.Context, path string) (*Report, []byte, os.FileMode, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("reading file")

	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, 0, errors.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, nil, 0, errors.Errorf("%s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, 0, errors.Errorf("reading %s: %w", path, err)
	}

	if !utf8.Valid(data) {
		return nil, nil, 0, errors.Errorf("decoding %s: %w", path, ErrInvalidUTF8)
	}

	result, err := r.replacer.ReplaceText(ctx, bytes.NewReader(data), r.rules)
	if err != nil {
		return nil, nil, 0, errors.Errorf("replacing tokens in %s: %w", path, err)
	}

	report := &Report{
		Path:         path,
		Strategy:     r.strategy,
		Counts:       make([]RuleCount, len(r.rules)),
		Replacements: result.ReplacementCount,
		Modified:     result.WasModified,
		SizeBefore:   len(result.OriginalContent),
		SizeAfter:    len(result.ModifiedContent),
	}
	for i, rule := range r.rules {
		report.Counts[i] = RuleCount{Rule: rule, Count: result.Counts[i]}
	}

	return report, result.ModifiedContent, info.Mode().Perm(), nil
}
