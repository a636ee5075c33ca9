package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

// RenderTemplate substitutes every {key} with its value from data. Keys
// without a value stay in the text as written.
func RenderTemplate(tmpl string, data map[string]any) string {
	out := tmpl
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = strings.ReplaceAll(out, "{"+k+"}", fmt.Sprint(data[k]))
	}
	return out
}

// UnresolvedPlaceholders lists the {key} tokens left in rendered text.
func UnresolvedPlaceholders(text string) []string {
	var out []string
	for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}
