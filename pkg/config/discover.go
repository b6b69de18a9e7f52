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
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// DiscoverPattern matches the config file names looked up by Discover
const DiscoverPattern = ".tokenremap.{yaml,yml,hcl,json}"

// preference order when several config files sit in the same directory
var discoverOrder = []string{".yaml", ".yml", ".hcl", ".json"}

// 🔍 Discover returns the config file in dir, or "" when there is none
func Discover(dir string) (string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), DiscoverPattern, doublestar.WithFilesOnly())
	if err != nil {
		return "", errors.Errorf("globbing %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return "", nil
	}

	slices.SortFunc(matches, func(a, b string) int {
		return slices.Index(discoverOrder, filepath.Ext(a)) - slices.Index(discoverOrder, filepath.Ext(b))
	})

	return filepath.Join(dir, matches[0]), nil
}
