// Package action resolves the URL a contact form posts to. The target is
// either declared literally or derived from an OpenAPI document by
// operationId, in which case the first server URL is joined with the
// operation path.
package action

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Target is a resolved form action.
type Target struct {
	URL         string
	Method      string
	OperationID string
}

// Source describes where the action comes from. URL wins when set.
type Source struct {
	URL         string
	OpenAPI     string
	OperationID string
	// Server overrides the server URL declared in the document.
	Server string
}

// Empty reports whether no action was declared.
func (s Source) Empty() bool {
	return strings.TrimSpace(s.URL) == "" && strings.TrimSpace(s.OpenAPI) == ""
}

// Resolve turns src into a Target. OpenAPI documents may be local paths or
// http(s) URLs.
func Resolve(ctx context.Context, src Source) (Target, error) {
	if ctx == nil {
		return Target{}, errors.New("action: context is required")
	}
	if literal := strings.TrimSpace(src.URL); literal != "" {
		return Target{URL: literal, Method: http.MethodPost}, nil
	}
	if strings.TrimSpace(src.OpenAPI) == "" {
		return Target{}, errors.New("action: neither URL nor OpenAPI document declared")
	}

	raw, err := load(ctx, strings.TrimSpace(src.OpenAPI))
	if err != nil {
		return Target{}, err
	}
	return FromDocument(ctx, raw, src.OperationID, src.Server)
}

// FromDocument finds operationID in an OpenAPI document and builds the
// absolute action URL for it. Only POST operations qualify.
func FromDocument(ctx context.Context, raw []byte, operationID, server string) (Target, error) {
	operationID = strings.TrimSpace(operationID)
	if operationID == "" {
		return Target{}, errors.New("action: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return Target{}, fmt.Errorf("action: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return Target{}, fmt.Errorf("action: validate document: %w", err)
	}

	if spec.Paths == nil {
		return Target{}, fmt.Errorf("action: operation %q not found", operationID)
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID != operationID {
				continue
			}
			if method != http.MethodPost {
				return Target{}, fmt.Errorf("action: operation %q uses %s, want POST", operationID, method)
			}
			base := strings.TrimSpace(server)
			if base == "" {
				base = firstServer(op, item, spec)
			}
			target, err := join(base, path)
			if err != nil {
				return Target{}, err
			}
			return Target{URL: target, Method: method, OperationID: operationID}, nil
		}
	}
	return Target{}, fmt.Errorf("action: operation %q not found", operationID)
}

// firstServer prefers operation level servers, then path level, then the
// document's.
func firstServer(op *openapi3.Operation, item *openapi3.PathItem, spec *openapi3.T) string {
	if op.Servers != nil {
		if server := firstURL(*op.Servers); server != "" {
			return server
		}
	}
	if server := firstURL(item.Servers); server != "" {
		return server
	}
	return firstURL(spec.Servers)
}

func firstURL(servers openapi3.Servers) string {
	for _, server := range servers {
		if server != nil && strings.TrimSpace(server.URL) != "" {
			return strings.TrimSpace(server.URL)
		}
	}
	return ""
}

func join(base, path string) (string, error) {
	if base == "" {
		return "", errors.New("action: document declares no server URL")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("action: parse server URL: %w", err)
	}
	if !parsed.IsAbs() {
		return "", fmt.Errorf("action: server URL %q must be absolute", base)
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/"), nil
}

func load(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, fmt.Errorf("action: build document request: %w", err)
		}
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("action: fetch document: %w", err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("action: fetch document: status %d", res.StatusCode)
		}
		return io.ReadAll(res.Body)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("action: read document: %w", err)
	}
	return data, nil
}
