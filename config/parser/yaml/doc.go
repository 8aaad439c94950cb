// Package yaml provides a YAML parser for the config package.
//
// It uses github.com/goccy/go-yaml. Parse decodes a document, or a section of
// it selected by a colon-separated path, into a struct; the path is converted
// to goccy's PathString form ("api:permissions" -> "$.api.permissions").
// ParseTable flattens a document into dotted property keys so YAML files can
// act as property sources next to .properties files.
//
// Usage:
//
//	parser := yaml.NewParser()
//	var settings Settings
//	err := parser.Parse(data, &settings, "props")
//
//	table, err := parser.ParseTable(data)
package yaml
