package extension

import (
	"slices"
	"strings"
)

const (
	// DefaultName marks where the built-in defaults are inserted in a requested list.
	DefaultName = "default"
	// RemovePrefix marks a name, or the default set, as excluded.
	RemovePrefix = "-"
	// Separator splits a requested list.
	Separator = ","
)

// ExistsFunc reports whether an extension with the given name is registered.
type ExistsFunc func(name string) bool

// Merge combines the requested list with the defaults that pass exists and
// returns the final active names. A nil exists accepts every default.
//
// The result never contains DefaultName, nothing in it starts with RemovePrefix,
// and each name appears once.
func Merge(requested string, defaults []string, exists ExistsFunc) []string {
	available := make([]string, 0, len(defaults))

	for _, name := range defaults {
		if exists == nil || exists(name) {
			available = append(available, name)
		}
	}

	names := Split(requested)

	if !slices.Contains(names, RemovePrefix+DefaultName) {
		at := slices.Index(names, DefaultName)
		if at < 0 {
			at = 0
		}

		names = slices.Insert(names, at, available...)
	}

	names = removeAll(names, DefaultName)

	for _, name := range slices.Clone(names) {
		if !strings.HasPrefix(name, RemovePrefix) {
			continue
		}

		names = removeAll(names, name)
		names = removeAll(names, strings.TrimPrefix(name, RemovePrefix))
	}

	return dedupe(names)
}

// Split breaks a comma-separated list into trimmed, non-empty names.
// An empty or blank input yields an empty, non-nil slice.
func Split(list string) []string {
	names := []string{}

	for part := range strings.SplitSeq(list, Separator) {
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}

	return names
}

// Join renders names as a comma-separated list accepted by Merge.
func Join(names []string) string {
	return strings.Join(names, Separator)
}

func removeAll(names []string, target string) []string {
	return slices.DeleteFunc(names, func(name string) bool {
		return name == target
	})
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))

	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		result = append(result, name)
	}

	return result
}
