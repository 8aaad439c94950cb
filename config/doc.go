// Package config holds the source plumbing shared by the property store and the
// application settings.
//
// The package is a set of small interfaces:
//   - DataFetcher / Source: read raw bytes, optionally telling where from
//   - Locator: enumerate every Source published under a logical name
//   - Parser: decode a document (or a path inside it) into a struct
//   - TableParser: decode a property source into a flat key/value table
//   - Validator / Defaulter: post-parse hooks used by Provider
//
// Implementations live in sub-packages: config/fetcher/file for files and
// search paths, config/parser/properties for key=value sources and
// config/parser/yaml for YAML.
//
// # Path Navigation
//
// Parser paths use colon (:) as the separator:
//
//	"api:permissions"           -> config["api"]["permissions"]
//	""                          -> entire document
//
// # Example
//
//	settings, err := config.Provider(&Settings{}, "props")(
//	    yamlparser.NewParser(), fetcher)
package config
