// Package properties parses Java-style .properties sources for the config
// package, using github.com/magiconair/properties with expansion disabled.
package properties
