package postalcode

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux and chi.Router.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full mount path for the component route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the lookup handler under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers a handler under basePath using a
// pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("postalcode: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	pattern := mountPath(basePath, opts.RoutePath) + opts.Wildcard
	mux.Handle(pattern, HandlerWithOptions(opts))
	return pattern, nil
}

// mountPath always ends in "/" so the code can follow as a path segment.
func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.Trim(strings.TrimSpace(routePath), "/")

	route := "/"
	if routePath != "" {
		route = "/" + routePath + "/"
	}

	if basePath == "" || basePath == "/" {
		return route
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + route
}
