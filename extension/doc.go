// Package extension decides which named extensions are active, and in which order,
// by merging a user supplied comma-separated list with a list of built-in defaults.
//
// The requested list understands two reserved forms:
//   - "default" marks the position where the built-in defaults are inserted.
//     When it is absent (or first), defaults go to the front.
//   - A "-" prefix removes a name: "-foo" drops both "-foo" and "foo".
//     "-default" drops every built-in default.
//
// Example:
//
//	extension.Merge("auth,default,-metrics", []string{"metrics", "trace"}, nil)
//	// -> ["auth", "trace"]
//
// Defaults only take part when the existence lookup reports them as registered;
// a nil lookup accepts them all.
// MergeValues binds that lookup to a Registry for a given extension kind.
package extension
