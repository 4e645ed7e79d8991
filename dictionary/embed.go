// Package dictionary embeds the technology keyword dictionary for
// compile-time inclusion. Each YAML file holds a list of entries mapping a
// canonical technology term to its category, recognition aliases, and
// priority weight (1 = most significant).
//
// Files load in sorted name order; entry order within and across files is
// the dictionary scan order, which fixes keyword ordering in analysis
// results.
//
// Usage:
//
//	keywords.Load(dictionary.FS, "v1")
package dictionary

import "embed"

//go:embed v1/*.yaml
var FS embed.FS
