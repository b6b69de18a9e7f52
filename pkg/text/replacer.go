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

package text

import (
	"context"
	"io"

	"gitlab.com/tozd/go/errors"
)

// 🧭 Strategy names accepted by NewReplacer
const (
	StrategySimultaneous = "simultaneous"
	StrategySequential   = "sequential"
)

// 🔄 Rule defines a single literal token replacement
type Rule struct {
	// From is the literal text to match
	From string `json:"from" yaml:"from" hcl:"from"`

	// To is the replacement text
	To string `json:"to" yaml:"to" hcl:"to"`
}

// 📊 Result contains the results of a replacement pass
type Result struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the total number of replacements made
	ReplacementCount int

	// Counts holds the number of matches per rule, indexed like the rules passed in
	Counts []int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// 🔌 Replacer applies an ordered list of rules to some content
type Replacer interface {
	// ReplaceText applies rules to content and returns the rewritten bytes with counts
	ReplaceText(ctx context.Context, content io.Reader, rules []Rule) (*Result, error)

	// ValidateRules checks that all rules are usable
	ValidateRules(rules []Rule) error
}

// 🏭 NewReplacer returns the replacer for a strategy name; empty means simultaneous
func NewReplacer(strategy string) (Replacer, error) {
	switch strategy {
	case "", StrategySimultaneous:
		return NewSimultaneousReplacer(), nil
	case StrategySequential:
		return NewSequentialReplacer(), nil
	default:
		return nil, errors.Errorf("unknown strategy %q", strategy)
	}
}

// validateRules is shared by both replacers
func validateRules(rules []Rule) error {
	for i, rule := range rules {
		if rule.From == "" {
			return errors.Errorf("rule %d: from is required", i)
		}
	}
	return nil
}

// readContent drains content after checking ctx
func readContent(ctx context.Context, content io.Reader) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("replacing text: %w", err)
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}
	return data, nil
}
