package property

import (
	"regexp"
	"strings"
)

// placeholderPattern matches ${name} and $name, tolerating blanks inside the
// braces. The closing brace is optional, so "${name" still resolves.
var placeholderPattern = regexp.MustCompile(`\$\s*\{?\s*([._0-9a-zA-Z]+)\s*\}?`)

// Expand replaces every placeholder in expr in a single left-to-right pass.
// Each name resolves to its override if one exists, else to params[name],
// else to the empty string. A "$" that does not start a placeholder is kept.
// Substituted values are not expanded again.
func Expand(expr string, overrides Overrides, params Table) string {
	if !strings.Contains(expr, "$") {
		return expr
	}

	matches := placeholderPattern.FindAllStringSubmatchIndex(expr, -1)
	if len(matches) == 0 {
		return expr
	}

	var out strings.Builder

	out.Grow(len(expr))

	last := 0

	for _, match := range matches {
		out.WriteString(expr[last:match[0]])
		out.WriteString(resolveName(expr[match[2]:match[3]], overrides, params))

		last = match[1]
	}

	out.WriteString(expr[last:])

	return out.String()
}

func resolveName(name string, overrides Overrides, params Table) string {
	if value, ok := lookup(overrides, name); ok {
		return value
	}

	return params.GetOr(name, "")
}
