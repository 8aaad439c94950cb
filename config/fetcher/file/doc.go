// Package file provides filesystem sources and locators for the config package.
//
// Fetcher reads one file at construction time and caches it; it is used when a
// property source is named by an absolute path. Source reads its file on every
// Fetch and is what the locators hand out, so a file that turns unreadable only
// fails the load that touches it.
//
// SearchPath and FSLocator implement config.Locator: given a logical name such
// as "hjarta.properties" they return one Source per search root that holds it.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("/etc/hjarta/hjarta.properties")()
//	if err != nil {
//	    // file not found, permission denied, path is directory, etc.
//	}
//
//	sources, err := file.NewSearchPath("conf", "/etc/hjarta").Locate("hjarta.properties")
//
// Error Handling:
//   - Errors include the filepath for easier debugging
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
//   - Locators skip missing candidates silently
package file
