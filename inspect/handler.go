// Package inspect serves a read-only JSON view of resolved properties and
// extension merge previews.
package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/0xalexb/hjarta-props/extension"
	"github.com/0xalexb/hjarta-props/property"
)

// PropertyView is the body of a single property lookup.
type PropertyView struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MergeView is the body of an extension merge preview.
type MergeView struct {
	Kind       string   `json:"kind"`
	Requested  string   `json:"requested"`
	Defaults   []string `json:"defaults"`
	Extensions []string `json:"extensions"`
}

type errorView struct {
	Error string `json:"error"`
}

type handler struct {
	resolver *property.Resolver
	registry extension.Registry
	logger   *slog.Logger
}

// NewHandler returns the inspection routes:
//
//	GET /properties                 every stored key with its resolved value
//	GET /properties/{key}           one resolved value, 404 when key is unknown
//	GET /extensions/{kind}          merge of ?requested= with ?defaults= for kind
//
// A nil registry knows no extensions, so every default is dropped from the
// preview. A nil logger uses slog.Default().
func NewHandler(resolver *property.Resolver, registry extension.Registry, logger *slog.Logger) http.Handler {
	if resolver == nil {
		resolver = property.NewResolver(nil, nil)
	}

	if logger == nil {
		logger = slog.Default()
	}

	h := &handler{resolver: resolver, registry: registry, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /properties", h.listProperties)
	mux.HandleFunc("GET /properties/{key...}", h.getProperty)
	mux.HandleFunc("GET /extensions/{kind}", h.mergeExtensions)

	return mux
}

func (h *handler) listProperties(w http.ResponseWriter, _ *http.Request) {
	keys := h.resolver.Store().Keys()
	values := make(map[string]string, len(keys))

	for _, key := range keys {
		values[key] = h.resolver.Get(key)
	}

	h.write(w, http.StatusOK, values)
}

func (h *handler) getProperty(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	value, found := h.resolver.Lookup(key)
	if !found {
		h.write(w, http.StatusNotFound, errorView{Error: "property not found: " + key})

		return
	}

	h.write(w, http.StatusOK, PropertyView{Key: key, Value: value})
}

func (h *handler) mergeExtensions(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	query := r.URL.Query()
	requested := query.Get("requested")
	defaults := extension.Split(query.Get("defaults"))

	h.write(w, http.StatusOK, MergeView{
		Kind:       kind,
		Requested:  requested,
		Defaults:   defaults,
		Extensions: extension.MergeValues(h.registry, kind, requested, defaults),
	})
}

func (h *handler) write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		h.logger.Warn("failed to encode response", slog.Any("error", err))
	}
}
