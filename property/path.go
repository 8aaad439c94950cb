package property

import "os"

const (
	// PathKey is the override naming the properties source.
	PathKey = "hjarta.properties.file"
	// PathEnv is the environment variable consulted when PathKey has no override.
	PathEnv = "HJARTA_PROPERTIES_FILE"
	// DefaultPath is the logical source name used when nothing else is set.
	DefaultPath = "hjarta.properties"
)

// ResolvePath picks the properties source name: a non-empty PathKey override,
// then a non-empty PathEnv environment variable, then DefaultPath.
func ResolvePath(overrides Overrides) string {
	if value, ok := lookup(overrides, PathKey); ok && value != "" {
		return value
	}

	if value := os.Getenv(PathEnv); value != "" {
		return value
	}

	return DefaultPath
}
