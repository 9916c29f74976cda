package economy

import (
	"math"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatAmount rounds v and adds thousands separators.
func FormatAmount(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// FormatCost renders c as "glyph amount" pairs joined by sep. Names listed in
// order come first in that order, anything else follows alphabetically.
// A resource without a glyph is shown by name.
func FormatCost(c Cost, order []string, glyphs map[string]string, sep string) string {
	if sep == "" {
		sep = ", "
	}
	seen := make(map[string]bool, len(c))
	keys := make([]string, 0, len(c))
	for _, name := range order {
		if _, ok := c[name]; ok && !seen[name] {
			keys = append(keys, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range c {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	parts := make([]string, 0, len(keys))
	for _, name := range keys {
		label := name
		if g, ok := glyphs[name]; ok && g != "" {
			label = g
		}
		parts = append(parts, label+" "+FormatAmount(c[name]))
	}
	return strings.Join(parts, sep)
}
