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

// 🔤 Tailwind font-size tokens rewritten by the font preset
const (
	TokenXS      = "text-xs"
	Token10px    = "text-[10px]"
	TokenSM      = "text-sm"
	TokenBase    = "text-base"
	FontSentinel = "TEXT_SM_TEMP"
)

// FontSizeRules returns the collision-free font table. Only safe with a
// replacer that never rescans its own output.
func FontSizeRules() []Rule {
	return []Rule{
		{From: TokenXS, To: TokenBase},
		{From: Token10px, To: TokenSM},
	}
}

// SentinelFontSizeRules returns the three step font table. text-xs is parked on
// a sentinel first so the text-sm produced by the second rule is never
// promoted by the third. Reordering these breaks the rewrite.
func SentinelFontSizeRules() []Rule {
	return []Rule{
		{From: TokenXS, To: FontSentinel},
		{From: Token10px, To: TokenSM},
		{From: FontSentinel, To: TokenBase},
	}
}

// RulesFor picks the font table that is correct for a strategy
func RulesFor(strategy string) []Rule {
	if strategy == StrategySequential {
		return SentinelFontSizeRules()
	}
	return FontSizeRules()
}

// SummaryLines describes the effect of the font preset
func SummaryLines() []string {
	return []string{
		"text-[10px] → text-sm (12px → 14px)",
		"text-xs → text-base (12px → 16px)",
	}
}
