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

package remap

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/tokenremap/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🧪 createTestEnv writes content to a temp App.jsx and returns its path
func createTestEnv(t *testing.T, content string) (context.Context, string) {
	path := filepath.Join(t.TempDir(), "App.jsx")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing fixture")

	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background()), path
}

func newRemapper(t *testing.T, strategy string) *Remapper {
	replacer, err := text.NewReplacer(strategy)
	require.NoError(t, err)
	r, err := New(Options{Replacer: replacer, Rules: text.RulesFor(strategy)})
	require.NoError(t, err)
	return r
}

func TestRemap(t *testing.T) {
	tests := []struct {
		name             string
		content          string
		want             string
		wantReplacements int
		wantModified     bool
	}{
		{
			name:             "text_xs",
			content:          `<div class="text-xs">`,
			want:             `<div class="text-base">`,
			wantReplacements: 1,
			wantModified:     true,
		},
		{
			name:             "text_10px",
			content:          `<div class="text-[10px]">`,
			want:             `<div class="text-sm">`,
			wantReplacements: 1,
			wantModified:     true,
		},
		{
			name:             "both",
			content:          `class="text-xs text-[10px]"`,
			want:             `class="text-base text-sm"`,
			wantReplacements: 2,
			wantModified:     true,
		},
		{
			name:    "untouched",
			content: "export default function App() { return null }\n",
			want:    "export default function App() { return null }\n",
		},
		{
			name:    "existing_text_sm",
			content: `class="text-sm font-bold"`,
			want:    `class="text-sm font-bold"`,
		},
		{
			name:    "empty_file",
			content: "",
			want:    "",
		},
	}

	for _, strategy := range []string{text.StrategySimultaneous, text.StrategySequential} {
		for _, tt := range tests {
			t.Run(strategy+"/"+tt.name, func(t *testing.T) {
				ctx, path := createTestEnv(t, tt.content)

				report, err := newRemapper(t, strategy).Remap(ctx, path)
				require.NoError(t, err)

				got, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, tt.want, string(got))

				assert.Equal(t, path, report.Path)
				assert.Equal(t, strategy, report.Strategy)
				assert.True(t, report.Written)
				assert.Equal(t, tt.wantModified, report.Modified)
				assert.Equal(t, len(tt.content), report.SizeBefore)
				assert.Equal(t, len(tt.want), report.SizeAfter)
				if strategy == text.StrategySimultaneous {
					assert.Equal(t, tt.wantReplacements, report.Replacements)
				}
			})
		}
	}
}

func TestRemap_SecondPassIsNoop(t *testing.T) {
	ctx, path := createTestEnv(t, `<span className="text-xs">a</span><span className="text-[10px]">b</span>`)
	r := newRemapper(t, text.StrategySimultaneous)

	_, err := r.Remap(ctx, path)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	report, err := r.Remap(ctx, path)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.False(t, report.Modified)
	assert.Zero(t, report.Replacements)
}

func TestRemap_PreservesMode(t *testing.T) {
	ctx, path := createTestEnv(t, "text-xs")
	require.NoError(t, os.Chmod(path, 0600))

	_, err := newRemapper(t, "").Remap(ctx, path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestRemap_Errors(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T) (context.Context, string)
		strategy    string
		wantIs      error
		errContains string
	}{
		{
			name: "missing_file",
			setup: func(t *testing.T) (context.Context, string) {
				ctx, path := createTestEnv(t, "")
				return ctx, filepath.Join(filepath.Dir(path), "nope.jsx")
			},
			wantIs:      fs.ErrNotExist,
			errContains: "nope.jsx",
		},
		{
			name: "directory",
			setup: func(t *testing.T) (context.Context, string) {
				ctx, path := createTestEnv(t, "")
				return ctx, filepath.Dir(path)
			},
			errContains: "is a directory",
		},
		{
			name: "invalid_utf8",
			setup: func(t *testing.T) (context.Context, string) {
				return createTestEnv(t, "text-xs \xff\xfe")
			},
			wantIs:      ErrInvalidUTF8,
			errContains: "decoding",
		},
		{
			name: "sentinel_present",
			setup: func(t *testing.T) (context.Context, string) {
				return createTestEnv(t, "text-xs TEXT_SM_TEMP")
			},
			strategy:    text.StrategySequential,
			wantIs:      text.ErrSentinelPresent,
			errContains: "replacing tokens",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, path := tt.setup(t)

			var before []byte
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				before, err = os.ReadFile(path)
				require.NoError(t, err)
			}

			_, err := newRemapper(t, tt.strategy).Remap(ctx, path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			if tt.wantIs != nil {
				assert.True(t, errors.Is(err, tt.wantIs), "error should wrap %v", tt.wantIs)
			}

			if before != nil {
				after, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, before, after, "failed remap must not touch the file")
			}
		})
	}
}

func TestRemap_ReadOnlyFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}

	ctx, path := createTestEnv(t, "text-xs")
	require.NoError(t, os.Chmod(path, 0400))

	_, err := newRemapper(t, "").Remap(ctx, path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Contains(t, err.Error(), "writing")
}

func TestCheck(t *testing.T) {
	content := `class="text-xs text-xs text-[10px]"`
	ctx, path := createTestEnv(t, content)

	report, err := newRemapper(t, text.StrategySimultaneous).Check(ctx, path)
	require.NoError(t, err)

	assert.False(t, report.Written)
	assert.Equal(t, text.StrategySimultaneous, report.Strategy)
	assert.True(t, report.Modified)
	assert.Equal(t, 3, report.Replacements)
	assert.Equal(t, []RuleCount{
		{Rule: text.Rule{From: "text-xs", To: "text-base"}, Count: 2},
		{Rule: text.Rule{From: "text-[10px]", To: "text-sm"}, Count: 1},
	}, report.Counts)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(got), "check must not write")
}

func TestNew(t *testing.T) {
	r, err := New(Options{})
	require.NoError(t, err)
	assert.IsType(t, &text.SimultaneousReplacer{}, r.replacer)
	assert.Equal(t, text.FontSizeRules(), r.rules)
	assert.Equal(t, text.StrategySimultaneous, r.strategy)

	r, err = New(Options{Replacer: text.NewSequentialReplacer(), Rules: text.SentinelFontSizeRules()})
	require.NoError(t, err)
	assert.Equal(t, text.StrategySequential, r.strategy, "strategy should be inferred from the replacer")

	r, err = New(Options{Strategy: "custom"})
	require.NoError(t, err)
	assert.Equal(t, "custom", r.strategy, "explicit strategy should win")

	_, err = New(Options{Rules: []text.Rule{{To: "x"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from is required")
}
