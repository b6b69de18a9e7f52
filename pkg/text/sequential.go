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

// ErrSentinelPresent is returned when the input already holds a token that an
// earlier rule produces and a later rule consumes.
var ErrSentinelPresent = errors.Base("sentinel token already present in content")

// SequentialReplacer applies each rule in order over the whole text. The
// output of one rule is visible to every rule after it.
type SequentialReplacer struct{}

// NewSequentialReplacer creates a new SequentialReplacer
func NewSequentialReplacer() *SequentialReplacer {
	return &SequentialReplacer{}
}

// ReplaceText implements Replacer.ReplaceText
func (r *SequentialReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []Rule) (*Result, error) {
	originalContent, err := readContent(ctx, content)
	if err != nil {
		return nil, err
	}

	if err := r.ValidateRules(rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	current := string(originalContent)

	for _, sentinel := range sentinels(rules) {
		if strings.Contains(current, sentinel) {
			return nil, errors.Errorf("%w: %q", ErrSentinelPresent, sentinel)
		}
	}

	result := &Result{
		OriginalContent: originalContent,
		Counts:          make([]int, len(rules)),
	}

	logger := zerolog.Ctx(ctx)
	for i, rule := range rules {
		n := strings.Count(current, rule.From)
		result.Counts[i] = n
		if n == 0 {
			continue
		}
		current = strings.ReplaceAll(current, rule.From, rule.To)
		logger.Debug().Str("from", rule.From).Str("to", rule.To).Int("count", n).Msg("applied rule")
	}

	result.ModifiedContent = []byte(current)
	result.WasModified = current != string(originalContent)
	for _, n := range result.Counts {
		result.ReplacementCount += n
	}
	return result, nil
}

// ValidateRules implements Replacer.ValidateRules
func (r *SequentialReplacer) ValidateRules(rules []Rule) error {
	return validateRules(rules)
}

// sentinels lists the intermediate tokens of a rule chain
func sentinels(rules []Rule) []string {
	var out []string
	for i, produced := range rules {
		if produced.To == "" {
			continue
		}
		for _, consumed := range rules[i+1:] {
			if consumed.From == produced.To {
				out = append(out, produced.To)
				break
			}
		}
	}
	return out
}
