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
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// SimultaneousReplacer rewrites the text in a single left-to-right pass.
// At each position the first matching rule wins and its output is never
// rescanned, so rule order only matters when two rules match at the same
// offset.
type SimultaneousReplacer struct{}

// NewSimultaneousReplacer creates a new SimultaneousReplacer
func NewSimultaneousReplacer() *SimultaneousReplacer {
	return &SimultaneousReplacer{}
}

// ReplaceText implements Replacer.ReplaceText
func (r *SimultaneousReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []Rule) (*Result, error) {
	originalContent, err := readContent(ctx, content)
	if err != nil {
		return nil, err
	}

	if err := r.ValidateRules(rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	result := &Result{
		OriginalContent: originalContent,
		Counts:          make([]int, len(rules)),
	}

	src := string(originalContent)
	var b strings.Builder
	b.Grow(len(src))

	// last is the end of the text already copied to b
	last := 0
	for i := 0; i < len(src); {
		idx := matchAt(src[i:], rules)
		if idx < 0 {
			i++
			continue
		}
		b.WriteString(src[last:i])
		b.WriteString(rules[idx].To)
		result.Counts[idx]++
		i += len(rules[idx].From)
		last = i
	}
	b.WriteString(src[last:])

	for i, n := range result.Counts {
		result.ReplacementCount += n
		if n > 0 {
			zerolog.Ctx(ctx).Debug().Str("from", rules[i].From).Str("to", rules[i].To).Int("count", n).Msg("applied rule")
		}
	}

	if result.ReplacementCount == 0 {
		result.ModifiedContent = originalContent
		return result, nil
	}

	out := b.String()
	result.ModifiedContent = []byte(out)
	result.WasModified = out != src
	return result, nil
}

// ValidateRules implements Replacer.ValidateRules
func (r *SimultaneousReplacer) ValidateRules(rules []Rule) error {
	return validateRules(rules)
}

// matchAt returns the index of the first rule whose From prefixes s, or -1
func matchAt(s string, rules []Rule) int {
	for i, rule := range rules {
		if strings.HasPrefix(s, rule.From) {
			return i
		}
	}
	return -1
}
