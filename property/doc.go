// Package property resolves configuration values from layered property sources.
//
// A Store holds one flat Table, built lazily on first access by a Loader that
// reads every source published under a logical name (hjarta.properties by
// default; see ResolvePath). Sources are .properties files or YAML documents.
// In single-file mode only the first located source is read; in multi-file mode
// all of them are overlaid, later sources winning.
//
// A Resolver answers lookups in this order:
//  1. a non-empty process override (Overrides), returned as is
//  2. the stored value, or the caller's fallback
//
// and expands ${name} / $name placeholders in the result, each name resolving
// to its override, else its stored value, else "".
//
// Loading never fails. A missing or malformed source is logged through slog
// and contributes nothing.
//
// Example:
//
//	loader := property.NewLoader(property.WithLocator(file.NewSearchPath("conf")))
//	store := loader.StoreFor(property.EnvOverrides{}, property.LoadOptions{MultiFile: true})
//	resolver := property.NewResolver(store, property.EnvOverrides{})
//	addr := resolver.GetOr("server.address", ":8080")
package property
