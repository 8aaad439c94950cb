// Package middleware holds the HTTP middleware wrapped around the property
// inspection handler.
package middleware

import "net/http"

// Chain wraps handler with mws. The first middleware is the outermost one,
// so it sees the request first and the response last.
func Chain(handler http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			handler = mws[i](handler)
		}
	}

	return handler
}
