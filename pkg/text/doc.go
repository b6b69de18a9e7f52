// Package text rewrites literal tokens in text content.
//
// Two strategies are provided. SequentialReplacer applies rules one after
// another, so an intermediate sentinel is needed whenever one rule's output
// could be matched by a later rule. SimultaneousReplacer makes a single pass
// and never rescans what it emitted, which makes rule tables like
// FontSizeRules safe without a sentinel.
package text
